package systems

import (
	"log"

	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/game"
)

// AnimationClock 动画时钟
//
// 以当前动画自己的帧时长为节拍推进帧游标，是 FrameCursor 的唯一
// 写入者（动画名称变化时的清零由聚合的转移方法同步完成）。
// 节拍与运动轮询完全解耦：运动查询连续多次返回相同状态时，
// 动画仍按自己的节奏前进。
//
// 动画名称或宠物种类变化后必须调用 Rebind：旧表/旧时长下累积的
// 节拍立即作废，不会对新状态生效。
type AnimationClock struct {
	registry *config.PetConfigRegistry
	state    *game.PetVisualState

	frameDuration float64 // 当前动画的帧时长（秒）
	frameCount    int     // 当前动画的帧数
	elapsed       float64 // 当前帧已累积的时间（秒）
}

// NewAnimationClock 创建动画时钟并绑定到当前动画
func NewAnimationClock(registry *config.PetConfigRegistry, state *game.PetVisualState) *AnimationClock {
	c := &AnimationClock{
		registry: registry,
		state:    state,
	}
	c.Rebind()
	return c
}

// Rebind 重新绑定到聚合当前的 (宠物种类, 动画名称)
//
// 等价于"取消旧定时器并按新时长重新排定"：已累积的节拍清零，
// 并缓存新动画的帧时长与帧数。
func (c *AnimationClock) Rebind() {
	c.elapsed = 0

	anim, err := c.registry.TableFor(c.state.Kind, c.state.State.Name)
	if err != nil {
		// 注册表在构造时已完成校验，这里只可能是编程错误
		log.Printf("[AnimationClock] rebind failed: %v", err)
		c.frameDuration = 0
		c.frameCount = 0
		return
	}

	c.frameDuration = float64(anim.FrameDurationMs) / 1000.0
	c.frameCount = len(anim.Frames)
}

// Update 按 deltaTime 秒推进动画节拍
// 节拍到期时帧游标前进一步并按帧数回绕，然后以相同时长继续
func (c *AnimationClock) Update(deltaTime float64) {
	if c.frameCount <= 0 || c.frameDuration <= 0 {
		return
	}

	c.elapsed += deltaTime
	for c.elapsed >= c.frameDuration {
		c.elapsed -= c.frameDuration
		c.state.AdvanceFrame(c.frameCount)
	}
}
