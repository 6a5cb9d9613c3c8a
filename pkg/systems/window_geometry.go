// Package systems 实现宠物引擎的各个子系统
//
// 所有系统都运行在同一个更新循环里（单逻辑线程、协作式调度），
// 对 PetVisualState 的修改在单次回调内同步完成，不需要锁。
package systems

import (
	"log"
	"math"

	"github.com/decker502/deskpet/pkg/game"
)

// WindowGeometryTracker 窗口几何跟踪器
//
// 产出按显示缩放修正后的窗口逻辑尺寸，是 PetVisualState.WindowSize
// 的唯一写入者。尺寸来源有两个：
//
//   - 权威信号：宿主窗口的 resize 通知（ebiten Layout 回调）
//   - 兜底测量：启动时对显示器的一次测量（权威信号在某些宿主配置
//     下可能不可用）
//
// 策略（确定性）：兜底测量只在尚无任何非零尺寸时生效；一旦任一来源
// 产生过非零尺寸，后续兜底事件仅记录日志，不再覆盖权威值。
type WindowGeometryTracker struct {
	state *game.PetVisualState

	// 宿主查询失败时使用的配置默认尺寸
	defaultWidth  int
	defaultHeight int

	loaded         bool // 是否已有样本（含默认兜底），下游轮询以此放行
	haveSize       bool // 是否已产生过非零尺寸，此后兜底仅为咨询
	fallbackWarned bool
}

// NewWindowGeometryTracker 创建窗口几何跟踪器
func NewWindowGeometryTracker(state *game.PetVisualState, defaultWidth, defaultHeight int) *WindowGeometryTracker {
	return &WindowGeometryTracker{
		state:         state,
		defaultWidth:  defaultWidth,
		defaultHeight: defaultHeight,
	}
}

// ApplyHostSize 应用一次权威的宿主尺寸样本
//
// 原始物理尺寸除以显示缩放系数并向下取整为逻辑像素。
// 权威样本无条件覆盖当前值——包括归零（此时运动轮询挂起，
// 直到下一个就绪样本恢复）。
func (t *WindowGeometryTracker) ApplyHostSize(rawWidth, rawHeight, scale float64) {
	width, height := correctForScale(rawWidth, rawHeight, scale)

	t.state.SetWindowSize(width, height)
	t.loaded = true
	if width > 0 && height > 0 {
		t.haveSize = true
	}
}

// ApplyFallbackMeasure 应用一次兜底测量
// 仅在尚无任何非零尺寸时生效；此后的兜底事件不会抖动权威值
func (t *WindowGeometryTracker) ApplyFallbackMeasure(rawWidth, rawHeight, scale float64) {
	if t.haveSize {
		if !t.fallbackWarned {
			log.Printf("[Geometry] fallback measure ignored: authoritative size already tracked")
			t.fallbackWarned = true
		}
		return
	}

	width, height := correctForScale(rawWidth, rawHeight, scale)
	t.state.SetWindowSize(width, height)
	t.loaded = true
	if width > 0 && height > 0 {
		t.haveSize = true
		log.Printf("[Geometry] seeded from fallback measure: %dx%d", width, height)
	}
}

// ApplyDefaultSize 宿主查询失败时的软降级
// 使用配置默认尺寸并照常标记已加载，下游轮询在近似几何上继续运行
func (t *WindowGeometryTracker) ApplyDefaultSize() {
	if t.haveSize {
		return
	}
	log.Printf("[Geometry] host query failed, falling back to default size %dx%d",
		t.defaultWidth, t.defaultHeight)
	t.state.SetWindowSize(t.defaultWidth, t.defaultHeight)
	t.loaded = true
	t.haveSize = true
}

// Loaded 返回是否已有任何样本（含默认兜底）
func (t *WindowGeometryTracker) Loaded() bool {
	return t.loaded
}

// Ready 返回几何是否就绪（两个维度都为正，允许运动轮询运行）
func (t *WindowGeometryTracker) Ready() bool {
	return t.loaded && t.state.GeometryReady()
}

// correctForScale 物理尺寸 -> 逻辑像素（除以缩放系数后向下取整）
func correctForScale(rawWidth, rawHeight, scale float64) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	return int(math.Floor(rawWidth / scale)), int(math.Floor(rawHeight / scale))
}
