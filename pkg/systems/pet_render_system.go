package systems

import (
	"image"
	"log"

	"github.com/decker502/deskpet/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// PetRenderSystem 宠物渲染系统
//
// 唯一的职责是把当前帧画到屏幕上：从图集裁出帧矩形，按镜像标志
// 水平翻转，再平移到宠物位置。帧的选择（动画名、游标、镜像）完全由
// SpriteResolver 决定，本系统不做任何时序或状态判断。
type PetRenderSystem struct {
	resolver        *SpriteResolver
	resourceManager *game.ResourceManager

	// 图集加载失败只告警一次，避免每帧刷日志
	atlasWarned map[string]bool
}

// NewPetRenderSystem 创建宠物渲染系统
func NewPetRenderSystem(resolver *SpriteResolver, rm *game.ResourceManager) *PetRenderSystem {
	return &PetRenderSystem{
		resolver:        resolver,
		resourceManager: rm,
		atlasWarned:     make(map[string]bool),
	}
}

// Draw 绘制宠物当前帧
func (s *PetRenderSystem) Draw(screen *ebiten.Image, state *game.PetVisualState) {
	pet, err := s.resolver.Registry().Get(state.Kind)
	if err != nil {
		return
	}

	atlas, err := s.resourceManager.Atlas(state.Kind)
	if err != nil {
		if !s.atlasWarned[string(state.Kind)] {
			log.Printf("[PetRender] 图集不可用: %s: %v", state.Kind, err)
			s.atlasWarned[string(state.Kind)] = true
		}
		return
	}

	offset, mirror := s.resolver.Resolve(state.Kind, state.State, state.FrameCursor)
	rect := image.Rect(offset.X, offset.Y, offset.X+pet.FrameWidth, offset.Y+pet.FrameHeight)
	frame := atlas.SubImage(rect).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	if mirror {
		// 绕帧的垂直中线翻转：先取负再平移回帧宽
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(pet.FrameWidth), 0)
	}
	op.GeoM.Translate(state.X, state.Y)
	screen.DrawImage(frame, op)
}
