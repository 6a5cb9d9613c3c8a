// Package motion 实现运动裁决方（motion authority）
//
// 运动裁决方是引擎的外部协作者：给定当前窗口尺寸，决定宠物的下一个
// 位置和动画状态。引擎侧只依赖 Authority 接口；本包同时提供一个
// 进程内的物理实现 Engine。接口的调用形状、失败语义（单次调用返回
// error，调用方跳过本次 tick）和状态 token 约定与跨进程实现保持一致，
// 替换为远程实现时轮询器不需要任何改动。
package motion

// Authority 运动裁决方契约
//
// 状态 token 的格式为 "<name>-<direction>"，name ∈ {idle,run,jump,fall}，
// direction ∈ {left,right}。
type Authority interface {
	// GetPetMovement 推进一步运动并返回最新的位置与状态 token
	GetPetMovement(windowWidth, windowHeight int) (x, y float64, state string, err error)

	// ResetPetPosition 强制回到规范起始姿态（窗口底部居中、待机朝右）
	ResetPetPosition(windowWidth, windowHeight int) (x, y float64, state string, err error)
}
