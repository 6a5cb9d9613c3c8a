package systems

import (
	"testing"

	"github.com/decker502/deskpet/pkg/game"
	"github.com/decker502/deskpet/pkg/types"
)

// TestApplyHostSizeScaleCorrection 测试物理尺寸按缩放系数修正并向下取整
func TestApplyHostSizeScaleCorrection(t *testing.T) {
	state := game.NewPetVisualState(types.PetFox)
	tracker := NewWindowGeometryTracker(state, 400, 300)

	tracker.ApplyHostSize(1920, 1080, 1.5)

	if state.WindowWidth != 1280 || state.WindowHeight != 720 {
		t.Errorf("size: got %dx%d, want 1280x720", state.WindowWidth, state.WindowHeight)
	}
	if !tracker.Ready() {
		t.Error("Ready() after positive sample: got false, want true")
	}

	// 非整除结果向下取整
	tracker.ApplyHostSize(1001, 601, 2)
	if state.WindowWidth != 500 || state.WindowHeight != 300 {
		t.Errorf("floored size: got %dx%d, want 500x300", state.WindowWidth, state.WindowHeight)
	}
}

// TestApplyHostSizeInvalidScale 测试非法缩放系数按 1 处理
func TestApplyHostSizeInvalidScale(t *testing.T) {
	state := game.NewPetVisualState(types.PetFox)
	tracker := NewWindowGeometryTracker(state, 400, 300)

	tracker.ApplyHostSize(800, 600, 0)

	if state.WindowWidth != 800 || state.WindowHeight != 600 {
		t.Errorf("size with zero scale: got %dx%d, want 800x600", state.WindowWidth, state.WindowHeight)
	}
}

// TestNotReadyBeforeFirstSample 测试首个非零样本之前不就绪
func TestNotReadyBeforeFirstSample(t *testing.T) {
	state := game.NewPetVisualState(types.PetFox)
	tracker := NewWindowGeometryTracker(state, 400, 300)

	if tracker.Ready() {
		t.Error("Ready() before any sample: got true, want false")
	}
	if tracker.Loaded() {
		t.Error("Loaded() before any sample: got true, want false")
	}
}

// TestFallbackSeedsOnlyBeforeAuthoritative 测试兜底测量只在权威样本缺席时生效
func TestFallbackSeedsOnlyBeforeAuthoritative(t *testing.T) {
	state := game.NewPetVisualState(types.PetFox)
	tracker := NewWindowGeometryTracker(state, 400, 300)

	// 尚无任何样本：兜底生效
	tracker.ApplyFallbackMeasure(1024, 768, 1)
	if state.WindowWidth != 1024 || state.WindowHeight != 768 {
		t.Fatalf("seed from fallback: got %dx%d, want 1024x768", state.WindowWidth, state.WindowHeight)
	}

	// 已有非零尺寸：后续兜底仅为咨询，不得抖动权威值
	tracker.ApplyFallbackMeasure(640, 480, 1)
	if state.WindowWidth != 1024 || state.WindowHeight != 768 {
		t.Errorf("advisory fallback overwrote size: got %dx%d, want 1024x768",
			state.WindowWidth, state.WindowHeight)
	}

	// 权威样本照常覆盖
	tracker.ApplyHostSize(1920, 1080, 1)
	if state.WindowWidth != 1920 || state.WindowHeight != 1080 {
		t.Errorf("authoritative sample: got %dx%d, want 1920x1080",
			state.WindowWidth, state.WindowHeight)
	}
}

// TestFallbackIgnoredAfterAuthoritative 测试权威样本之后的兜底被忽略
func TestFallbackIgnoredAfterAuthoritative(t *testing.T) {
	state := game.NewPetVisualState(types.PetFox)
	tracker := NewWindowGeometryTracker(state, 400, 300)

	tracker.ApplyHostSize(800, 600, 1)
	tracker.ApplyFallbackMeasure(100, 100, 1)

	if state.WindowWidth != 800 || state.WindowHeight != 600 {
		t.Errorf("size after ignored fallback: got %dx%d, want 800x600",
			state.WindowWidth, state.WindowHeight)
	}
}

// TestApplyDefaultSize 测试宿主查询失败时的软降级
// 使用默认尺寸并照常标记已加载，下游轮询可以继续
func TestApplyDefaultSize(t *testing.T) {
	state := game.NewPetVisualState(types.PetFox)
	tracker := NewWindowGeometryTracker(state, 400, 300)

	tracker.ApplyDefaultSize()

	if !tracker.Loaded() {
		t.Error("Loaded() after default fallback: got false, want true")
	}
	if !tracker.Ready() {
		t.Error("Ready() after default fallback: got false, want true")
	}
	if state.WindowWidth != 400 || state.WindowHeight != 300 {
		t.Errorf("default size: got %dx%d, want 400x300", state.WindowWidth, state.WindowHeight)
	}

	// 已有尺寸后默认兜底不再覆盖
	tracker.ApplyHostSize(800, 600, 1)
	tracker.ApplyDefaultSize()
	if state.WindowWidth != 800 {
		t.Errorf("default fallback overwrote authoritative size: got %d, want 800", state.WindowWidth)
	}
}

// TestAuthoritativeZeroSuspends 测试权威归零样本使几何不就绪
func TestAuthoritativeZeroSuspends(t *testing.T) {
	state := game.NewPetVisualState(types.PetFox)
	tracker := NewWindowGeometryTracker(state, 400, 300)

	tracker.ApplyHostSize(800, 600, 1)
	if !tracker.Ready() {
		t.Fatal("Ready() after positive sample: got false")
	}

	// 窗口最小化等场景：权威样本归零，轮询必须挂起
	tracker.ApplyHostSize(0, 0, 1)
	if tracker.Ready() {
		t.Error("Ready() after zero sample: got true, want false")
	}

	// 下一个就绪样本恢复
	tracker.ApplyHostSize(800, 600, 1)
	if !tracker.Ready() {
		t.Error("Ready() after recovery sample: got false, want true")
	}
}
