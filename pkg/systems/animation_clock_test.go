package systems

import (
	"testing"

	"github.com/decker502/deskpet/pkg/game"
	"github.com/decker502/deskpet/pkg/types"
)

// TestFoxIdleFrameSequence 测试 fox idle（5 帧、每帧 200ms）的游标序列
// t=200,400,600,800,1000ms 时游标依次为 1,2,3,4,0
func TestFoxIdleFrameSequence(t *testing.T) {
	registry := newTestRegistry(t)
	state := game.NewPetVisualState(types.PetFox)
	clock := NewAnimationClock(registry, state)

	want := []int{1, 2, 3, 4, 0}
	for i, cursor := range want {
		clock.Update(0.2)
		if state.FrameCursor != cursor {
			t.Errorf("t=%dms: FrameCursor got %d, want %d", (i+1)*200, state.FrameCursor, cursor)
		}
	}
}

// TestClockAccumulatesSmallDeltas 测试小步长累积到帧时长才推进
// 动画节拍与轮询节拍解耦：多次更新不足一帧时游标不动
func TestClockAccumulatesSmallDeltas(t *testing.T) {
	registry := newTestRegistry(t)
	state := game.NewPetVisualState(types.PetFox)
	clock := NewAnimationClock(registry, state)

	// 12 x 16ms = 192ms < 200ms
	for i := 0; i < 12; i++ {
		clock.Update(0.016)
	}
	if state.FrameCursor != 0 {
		t.Errorf("FrameCursor before full frame elapsed: got %d, want 0", state.FrameCursor)
	}

	clock.Update(0.016)
	if state.FrameCursor != 1 {
		t.Errorf("FrameCursor after 208ms: got %d, want 1", state.FrameCursor)
	}
}

// TestClockMultipleAdvancesInOneUpdate 测试单次长步长触发多次帧推进
func TestClockMultipleAdvancesInOneUpdate(t *testing.T) {
	registry := newTestRegistry(t)
	state := game.NewPetVisualState(types.PetFox)
	clock := NewAnimationClock(registry, state)

	clock.Update(0.45)
	if state.FrameCursor != 2 {
		t.Errorf("FrameCursor after 450ms: got %d, want 2", state.FrameCursor)
	}
}

// TestRebindCancelsPendingBeat 测试重绑清零已累积的节拍
// 旧时长下累积的时间不得在新动画上生效
func TestRebindCancelsPendingBeat(t *testing.T) {
	registry := newTestRegistry(t)
	state := game.NewPetVisualState(types.PetFox)
	clock := NewAnimationClock(registry, state)

	// 累积 190ms（不足一帧）
	clock.Update(0.19)

	// 切换动画并重绑：节拍清零
	state.ApplyMovement(0, 0, types.AnimationState{Name: types.AnimRun, Direction: types.FacingRight})
	clock.Rebind()

	// run 帧时长 100ms：90ms 不推进
	clock.Update(0.09)
	if state.FrameCursor != 0 {
		t.Errorf("FrameCursor 90ms after rebind: got %d, want 0", state.FrameCursor)
	}

	clock.Update(0.01)
	if state.FrameCursor != 1 {
		t.Errorf("FrameCursor 100ms after rebind: got %d, want 1", state.FrameCursor)
	}
}

// TestKindSwitchRebindsToNewTable 测试切换宠物种类后立即换用新表
// 旧表/旧时长下排定的节拍不得对新状态生效，游标清零
func TestKindSwitchRebindsToNewTable(t *testing.T) {
	registry := newTestRegistry(t)
	state := game.NewPetVisualState(types.PetFox)
	clock := NewAnimationClock(registry, state)

	// fox idle 推进到游标 2，并累积部分节拍
	clock.Update(0.4)
	clock.Update(0.19)
	if state.FrameCursor != 2 {
		t.Fatalf("FrameCursor before switch: got %d, want 2", state.FrameCursor)
	}

	// 切换到 cat：游标立即清零，时钟重绑到 cat idle（150ms、4 帧）
	state.SwitchKind(types.PetCat)
	clock.Rebind()
	if state.FrameCursor != 0 {
		t.Fatalf("FrameCursor after switch: got %d, want 0", state.FrameCursor)
	}

	// 旧的 190ms 累积已作废：140ms 不推进
	clock.Update(0.14)
	if state.FrameCursor != 0 {
		t.Errorf("FrameCursor 140ms after switch: got %d, want 0", state.FrameCursor)
	}

	// cat idle 共 4 帧：600ms 推进 4 步回绕到 0
	clock.Update(0.01)
	if state.FrameCursor != 1 {
		t.Errorf("FrameCursor 150ms after switch: got %d, want 1", state.FrameCursor)
	}
	clock.Update(0.45)
	if state.FrameCursor != 0 {
		t.Errorf("FrameCursor after full cat idle cycle: got %d, want 0", state.FrameCursor)
	}
}
