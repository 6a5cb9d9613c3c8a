package systems

import (
	"log"

	"github.com/decker502/deskpet/internal/motion"
	"github.com/decker502/deskpet/pkg/game"
	"github.com/decker502/deskpet/pkg/types"
)

// DefaultPollIntervalMs 默认运动轮询间隔（毫秒）
const DefaultPollIntervalMs = 50

// MotionPoller 运动轮询器
//
// 以固定间隔带着当前窗口尺寸查询运动裁决方，并把结果写入聚合：
// Position 与 AnimationState 的唯一写入者。
//
// 失败处理：单次查询失败只记录日志并跳过本次 tick，聚合保持原值；
// 下一个排定的 tick 自然重试，不需要退避。
// 窗口尺寸任一维度非正时完全挂起（不发起任何查询），
// 在下一个就绪的几何样本后恢复。
type MotionPoller struct {
	authority motion.Authority
	state     *game.PetVisualState
	clock     *AnimationClock

	interval float64 // 轮询间隔（秒）
	elapsed  float64
}

// NewMotionPoller 创建运动轮询器
//
// 参数：
//   - intervalMs: 轮询间隔（毫秒），非正值回退到默认 50ms
func NewMotionPoller(authority motion.Authority, state *game.PetVisualState, clock *AnimationClock, intervalMs int) *MotionPoller {
	if intervalMs <= 0 {
		intervalMs = DefaultPollIntervalMs
	}
	return &MotionPoller{
		authority: authority,
		state:     state,
		clock:     clock,
		interval:  float64(intervalMs) / 1000.0,
	}
}

// SetIntervalMs 调整轮询间隔（毫秒），非正值回退到默认 50ms
// 已累积的节拍清零，新间隔从下一帧起计
func (p *MotionPoller) SetIntervalMs(intervalMs int) {
	if intervalMs <= 0 {
		intervalMs = DefaultPollIntervalMs
	}
	p.interval = float64(intervalMs) / 1000.0
	p.elapsed = 0
	log.Printf("[MotionPoller] poll interval set to %dms", intervalMs)
}

// Update 按 deltaTime 秒推进轮询节拍
func (p *MotionPoller) Update(deltaTime float64) {
	if !p.state.GeometryReady() {
		// 挂起：不累积节拍也不发起查询
		p.elapsed = 0
		return
	}

	p.elapsed += deltaTime
	if p.elapsed < p.interval {
		return
	}
	p.elapsed -= p.interval
	if p.elapsed > p.interval {
		// 长帧之后不补发积压的查询，回到整拍
		p.elapsed = 0
	}

	p.apply(p.authority.GetPetMovement(p.state.WindowWidth, p.state.WindowHeight))
}

// Reset 按需的一次性复位查询
// 走裁决方的复位入口，结果以与普通轮询完全相同的效果应用；
// 用于用户显式触发的重新定位
func (p *MotionPoller) Reset() {
	if !p.state.GeometryReady() {
		log.Printf("[MotionPoller] reset skipped: geometry not ready")
		return
	}
	p.apply(p.authority.ResetPetPosition(p.state.WindowWidth, p.state.WindowHeight))
}

// apply 应用一次裁决方查询结果
// 动画名称变化时帧游标清零与状态写入在同一次调用内完成，
// 然后立即重绑动画时钟——旧节拍不会对新状态生效
func (p *MotionPoller) apply(x, y float64, token string, err error) {
	if err != nil {
		log.Printf("[MotionPoller] movement query failed, tick skipped: %v", err)
		return
	}

	next, err := types.ParseStateToken(token)
	if err != nil {
		log.Printf("[MotionPoller] movement query returned bad state, tick skipped: %v", err)
		return
	}

	if p.state.ApplyMovement(x, y, next) {
		p.clock.Rebind()
	}
}
