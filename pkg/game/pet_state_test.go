package game

import (
	"testing"

	"github.com/decker502/deskpet/pkg/types"
)

// TestApplyMovementPositionAlwaysReplaced 测试位置无条件替换
func TestApplyMovementPositionAlwaysReplaced(t *testing.T) {
	state := NewPetVisualState(types.PetFox)

	state.ApplyMovement(10, 20, types.DefaultAnimationState())
	if state.X != 10 || state.Y != 20 {
		t.Errorf("position: got (%v,%v), want (10,20)", state.X, state.Y)
	}

	state.ApplyMovement(-5, 300, types.DefaultAnimationState())
	if state.X != -5 || state.Y != 300 {
		t.Errorf("position: got (%v,%v), want (-5,300)", state.X, state.Y)
	}
}

// TestApplyMovementSameNameKeepsCursor 测试同名状态不清零帧游标
// 方向变化也不清零——只有动画名称变化才清零
func TestApplyMovementSameNameKeepsCursor(t *testing.T) {
	state := NewPetVisualState(types.PetFox)
	state.FrameCursor = 3

	// 完全相同的状态
	changed := state.ApplyMovement(1, 1, types.AnimationState{Name: types.AnimIdle, Direction: types.FacingRight})
	if changed {
		t.Error("ApplyMovement with identical state: nameChanged should be false")
	}
	if state.FrameCursor != 3 {
		t.Errorf("FrameCursor after identical state: got %d, want 3", state.FrameCursor)
	}

	// 仅方向变化
	changed = state.ApplyMovement(2, 2, types.AnimationState{Name: types.AnimIdle, Direction: types.FacingLeft})
	if changed {
		t.Error("direction-only change: nameChanged should be false")
	}
	if state.FrameCursor != 3 {
		t.Errorf("FrameCursor after direction-only change: got %d, want 3", state.FrameCursor)
	}
	if state.State.Direction != types.FacingLeft {
		t.Errorf("Direction: got %q, want left", state.State.Direction)
	}
}

// TestApplyMovementNameChangeResetsCursor 测试动画名称变化在同一次更新中清零帧游标
func TestApplyMovementNameChangeResetsCursor(t *testing.T) {
	state := NewPetVisualState(types.PetFox)
	state.FrameCursor = 4

	changed := state.ApplyMovement(0, 0, types.AnimationState{Name: types.AnimRun, Direction: types.FacingRight})
	if !changed {
		t.Error("name change: nameChanged should be true")
	}
	if state.FrameCursor != 0 {
		t.Errorf("FrameCursor after name change: got %d, want 0", state.FrameCursor)
	}
	if state.State.Name != types.AnimRun {
		t.Errorf("Name: got %q, want run", state.State.Name)
	}
}

// TestAdvanceFrameWraps 测试帧游标按帧数回绕
func TestAdvanceFrameWraps(t *testing.T) {
	state := NewPetVisualState(types.PetFox)

	sequence := []int{1, 2, 0, 1, 2, 0}
	for i, want := range sequence {
		state.AdvanceFrame(3)
		if state.FrameCursor != want {
			t.Errorf("step %d: FrameCursor got %d, want %d", i, state.FrameCursor, want)
		}
	}

	// 帧数非法时不动
	state.FrameCursor = 2
	state.AdvanceFrame(0)
	if state.FrameCursor != 2 {
		t.Errorf("AdvanceFrame(0) should not move cursor, got %d", state.FrameCursor)
	}
}

// TestSwitchKindResetsCursor 测试切换宠物种类清零帧游标
func TestSwitchKindResetsCursor(t *testing.T) {
	state := NewPetVisualState(types.PetFox)
	state.FrameCursor = 4

	state.SwitchKind(types.PetCat)
	if state.Kind != types.PetCat {
		t.Errorf("Kind: got %q, want cat", state.Kind)
	}
	if state.FrameCursor != 0 {
		t.Errorf("FrameCursor after SwitchKind: got %d, want 0", state.FrameCursor)
	}

	// 切换到相同种类是空操作
	state.FrameCursor = 2
	state.SwitchKind(types.PetCat)
	if state.FrameCursor != 2 {
		t.Errorf("SwitchKind to same kind should not reset cursor, got %d", state.FrameCursor)
	}
}

// TestGeometryReady 测试几何就绪判定
func TestGeometryReady(t *testing.T) {
	state := NewPetVisualState(types.PetFox)

	if state.GeometryReady() {
		t.Error("GeometryReady before any sample: got true, want false")
	}

	state.SetWindowSize(800, 0)
	if state.GeometryReady() {
		t.Error("GeometryReady with zero height: got true, want false")
	}

	state.SetWindowSize(800, 600)
	if !state.GeometryReady() {
		t.Error("GeometryReady with positive size: got false, want true")
	}
}
