package systems

import (
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/types"
)

// SpriteResolver 精灵解析器
//
// 把 (宠物种类, 动画状态, 帧游标) 映射为图集中的帧原点和镜像标志。
// 纯查表，不修改任何状态。
//
// 所有帧坐标都按朝右绘制；朝左只体现在镜像标志上，由渲染层绕精灵
// 中心做水平翻转，查表本身不受朝向影响。
type SpriteResolver struct {
	registry *config.PetConfigRegistry
}

// NewSpriteResolver 创建精灵解析器
func NewSpriteResolver(registry *config.PetConfigRegistry) *SpriteResolver {
	return &SpriteResolver{registry: registry}
}

// Registry 返回解析器使用的配置注册表
func (r *SpriteResolver) Registry() *config.PetConfigRegistry {
	return r.registry
}

// Resolve 解析当前帧
//
// 游标越界时防御性地钳制到最后一个合法帧而不是失败——状态切换与
// 帧推进来自不同的节拍源，瞬时的越界游标不应该打断渲染。
// mirror 为 true 当且仅当朝向为左。
func (r *SpriteResolver) Resolve(kind types.PetKind, state types.AnimationState, cursor int) (config.FrameOffset, bool) {
	mirror := state.Direction == types.FacingLeft

	anim, err := r.registry.TableFor(kind, state.Name)
	if err != nil || len(anim.Frames) == 0 {
		// 注册表构造时已校验，正常运行不会走到这里
		return config.FrameOffset{}, mirror
	}

	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(anim.Frames) {
		cursor = len(anim.Frames) - 1
	}
	return anim.Frames[cursor], mirror
}
