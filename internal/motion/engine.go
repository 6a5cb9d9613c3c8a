package motion

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/decker502/deskpet/pkg/types"
)

// 物理常量（逻辑像素 / 秒）
const (
	petWidth  = 100.0
	petHeight = 100.0

	// 窗口尺寸退化（过小或为零）时使用的兜底尺寸
	defaultWindowWidth  = 400.0
	defaultWindowHeight = 300.0
	degenerateSizeLimit = 10.0

	gravity     = 980.0  // 重力加速度
	jumpImpulse = -500.0 // 起跳冲量（向上为负）
	maxSpeedX   = 200.0  // 水平速度上限

	// 每次推进中落地状态下随机起跳的概率
	jumpChance = 0.01

	// 撞墙反弹的速度衰减系数
	leftBounceDamping  = 0.8
	rightBounceDamping = 0.5

	// 水平速度超过该阈值视为奔跑
	runSpeedThreshold = 5.0

	// dt 上限：应用冻结恢复后避免一步跳变
	maxDeltaTime = 0.05
)

// Engine 进程内运动裁决实现
//
// 在自己的状态里积分速度与位置，根据窗口边界反弹，并由运动状态推导
// 动画 token。随机源与时钟均可注入，便于确定性测试。
type Engine struct {
	x, y   float64
	vx, vy float64

	onGround    bool
	facingRight bool

	windowWidth  float64
	windowHeight float64

	lastUpdate time.Time
	rng        *rand.Rand
	now        func() time.Time
}

// NewEngine 创建运动引擎并将宠物放到默认窗口的规范起始姿态
func NewEngine() *Engine {
	return newEngine(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

func newEngine(rng *rand.Rand, now func() time.Time) *Engine {
	e := &Engine{rng: rng, now: now}
	e.reset(defaultWindowWidth, defaultWindowHeight)
	return e
}

// GetPetMovement 推进一步运动
// 实现 Authority 接口；进程内实现不会失败，error 恒为 nil
func (e *Engine) GetPetMovement(windowWidth, windowHeight int) (float64, float64, string, error) {
	now := e.now()
	dt := now.Sub(e.lastUpdate).Seconds()
	e.lastUpdate = now

	if dt > maxDeltaTime {
		dt = maxDeltaTime
	}
	if dt < 0 {
		dt = 0
	}

	e.step(dt, float64(windowWidth), float64(windowHeight))
	return e.x, e.y, e.state().Token(), nil
}

// ResetPetPosition 回到规范起始姿态
func (e *Engine) ResetPetPosition(windowWidth, windowHeight int) (float64, float64, string, error) {
	e.reset(float64(windowWidth), float64(windowHeight))
	return e.x, e.y, e.state().Token(), nil
}

// reset 将宠物放到窗口底部居中、待机朝右
// 起始姿态只兜底非正尺寸；10 像素的退化阈值仅用于在途更新
func (e *Engine) reset(windowWidth, windowHeight float64) {
	w, h := windowWidth, windowHeight
	if w <= 0 {
		w = defaultWindowWidth
	}
	if h <= 0 {
		h = defaultWindowHeight
	}

	e.x = w/2 - petWidth/2
	e.y = h - petHeight
	e.vx = 0
	e.vy = 0
	e.onGround = true
	e.facingRight = true
	e.windowWidth = w
	e.windowHeight = h
	e.lastUpdate = e.now()
}

// step 按 dt 秒推进物理状态
func (e *Engine) step(dt, windowWidth, windowHeight float64) {
	// 仅在窗口尺寸确实变化时记录，避免刷屏
	if math.Abs(e.windowWidth-windowWidth) > 1 || math.Abs(e.windowHeight-windowHeight) > 1 {
		log.Printf("[Motion] window size changed: %.0fx%.0f -> %.0fx%.0f",
			e.windowWidth, e.windowHeight, windowWidth, windowHeight)
		e.windowWidth = windowWidth
		e.windowHeight = windowHeight
	}

	if !e.onGround {
		e.vy += gravity * dt
	}

	// 落地状态下小概率随机起跳，水平速度在 ±maxSpeedX 内随机
	if e.onGround && e.rng.Float64() < jumpChance {
		e.vy = jumpImpulse
		e.vx = (e.rng.Float64()*2 - 1) * maxSpeedX
		e.onGround = false
	}

	e.x += e.vx * dt
	e.y += e.vy * dt

	w, h := effectiveSize(windowWidth, windowHeight)

	// 地板
	floor := h - petHeight
	if e.y > floor {
		e.y = floor
		e.vy = 0
		e.onGround = true
	}

	// 天花板
	if e.y < 0 {
		e.y = 0
		e.vy = 0
	}

	// 左墙：反弹并衰减
	if e.x < 0 {
		e.x = 0
		e.vx = -e.vx * leftBounceDamping
		e.facingRight = true
	}

	// 右墙
	rightBoundary := w - petWidth
	if e.x > rightBoundary {
		e.x = rightBoundary
		e.vx = -e.vx * rightBounceDamping
		e.facingRight = false
	}
}

// state 由运动状态推导动画状态
// 空中按垂直速度区分跳跃/下落，地面按水平速度区分奔跑/待机；
// 奔跑的朝向取速度符号，其余取最近一次撞墙确定的朝向
func (e *Engine) state() types.AnimationState {
	facing := types.FacingLeft
	if e.facingRight {
		facing = types.FacingRight
	}

	switch {
	case !e.onGround && e.vy < 0:
		return types.AnimationState{Name: types.AnimJump, Direction: facing}
	case !e.onGround:
		return types.AnimationState{Name: types.AnimFall, Direction: facing}
	case math.Abs(e.vx) > runSpeedThreshold:
		direction := types.FacingLeft
		if e.vx >= 0 {
			direction = types.FacingRight
		}
		return types.AnimationState{Name: types.AnimRun, Direction: direction}
	default:
		return types.AnimationState{Name: types.AnimIdle, Direction: facing}
	}
}

// effectiveSize 兜底退化的窗口尺寸
func effectiveSize(w, h float64) (float64, float64) {
	if w <= degenerateSizeLimit {
		w = defaultWindowWidth
	}
	if h <= degenerateSizeLimit {
		h = defaultWindowHeight
	}
	return w, h
}
