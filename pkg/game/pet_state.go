package game

import "github.com/decker502/deskpet/pkg/types"

// PetVisualState 宠物视觉状态聚合
// 渲染消费的唯一数据源。所有修改都通过具名的转移方法进行，
// 每个字段只有一个写入者，避免多个定时器之间的顺序歧义：
//
//   - Kind:            设置面板（SwitchKind）
//   - X/Y:             运动轮询器（ApplyMovement / 显式 Reset）
//   - State:           运动轮询器（ApplyMovement）
//   - FrameCursor:     动画时钟（AdvanceFrame）；唯一例外是动画名称
//     变化时 ApplyMovement / SwitchKind 同步清零
//   - WindowWidth/..:  窗口几何跟踪器（SetWindowSize）
//   - OverlayOpen:     遮罩模式控制器（SetOverlayOpen）
//
// 所有方法都在同一个更新循环内同步调用，不需要任何锁。
type PetVisualState struct {
	Kind types.PetKind

	// 窗口内逻辑像素坐标，权威值始终来自运动裁决方，从不在本地推算
	X, Y float64

	State       types.AnimationState
	FrameCursor int

	// 按显示缩放修正后的窗口逻辑尺寸
	WindowWidth  int
	WindowHeight int

	OverlayOpen bool
}

// NewPetVisualState 创建初始视觉状态
// 初始动画为待机朝右，遮罩关闭；窗口尺寸在首次几何采样前保持为零
func NewPetVisualState(kind types.PetKind) *PetVisualState {
	return &PetVisualState{
		Kind:  kind,
		State: types.DefaultAnimationState(),
	}
}

// ApplyMovement 应用一次运动查询结果
//
// Position 无条件替换；AnimationState 仅在 token 不同的时候替换，
// 且恰好在动画名称变化的那次更新中将帧游标清零——方向变化不清零，
// 这样左右转向不会打断正在播放的动画。
//
// 返回动画名称是否发生了变化，调用方据此重新绑定动画时钟。
func (s *PetVisualState) ApplyMovement(x, y float64, next types.AnimationState) bool {
	s.X = x
	s.Y = y

	if next == s.State {
		return false
	}

	nameChanged := next.Name != s.State.Name
	s.State = next
	if nameChanged {
		s.FrameCursor = 0
	}
	return nameChanged
}

// AdvanceFrame 将帧游标前进一步并按帧数回绕
// 仅由动画时钟调用
func (s *PetVisualState) AdvanceFrame(frameCount int) {
	if frameCount <= 0 {
		return
	}
	s.FrameCursor = (s.FrameCursor + 1) % frameCount
}

// SwitchKind 切换宠物种类
// 切换意味着换用另一张动画表，帧游标立即清零；
// 调用方必须随后重新绑定动画时钟，避免旧表的节拍继续生效
func (s *PetVisualState) SwitchKind(kind types.PetKind) {
	if kind == s.Kind {
		return
	}
	s.Kind = kind
	s.FrameCursor = 0
}

// SetWindowSize 更新窗口逻辑尺寸
// 仅由窗口几何跟踪器调用
func (s *PetVisualState) SetWindowSize(width, height int) {
	s.WindowWidth = width
	s.WindowHeight = height
}

// GeometryReady 返回窗口尺寸是否已就绪（两个维度都为正）
// 运动轮询器在就绪前不得发起任何查询
func (s *PetVisualState) GeometryReady() bool {
	return s.WindowWidth > 0 && s.WindowHeight > 0
}

// SetOverlayOpen 更新遮罩开合状态
// 仅由遮罩模式控制器调用
func (s *PetVisualState) SetOverlayOpen(open bool) {
	s.OverlayOpen = open
}
