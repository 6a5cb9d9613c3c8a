package systems

import (
	"log"

	"github.com/decker502/deskpet/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WindowPort 宿主窗口端口
// 控制指针穿透：启用时指针事件穿过宠物窗口到达下层应用
type WindowPort interface {
	SetClickThrough(enabled bool)
}

// OverlayModeController 遮罩模式控制器
//
// 两态状态机：Closed（穿透开启，指针事件到达下层窗口）和
// Open（穿透关闭，设置面板可交互）。
//
// 转移：快捷键（Ctrl + .）或外部投递的 open 通知（托盘图标的
// 替身）把 Closed 切到 Open；显式关闭、面板外点击或 Escape 把
// Open 切回 Closed。每次转移恰好通知宿主窗口一次：
// passthrough = (mode == Closed)。初始状态为 Closed。
type OverlayModeController struct {
	state  *game.PetVisualState
	window WindowPort

	// 外部投递的 open 通知（如托盘），可为 nil
	openTrigger <-chan struct{}

	// PanelContains 面板命中测试，用于面板外点击判定
	// 未设置时任何点击都视为面板外
	PanelContains func(x, y int) bool

	// ShortcutEnabled 快捷键开关（来自设置），未设置视为启用
	ShortcutEnabled func() bool
}

// NewOverlayModeController 创建遮罩模式控制器（初始 Closed）
func NewOverlayModeController(state *game.PetVisualState, window WindowPort, openTrigger <-chan struct{}) *OverlayModeController {
	return &OverlayModeController{
		state:       state,
		window:      window,
		openTrigger: openTrigger,
	}
}

// Open 执行 Closed -> Open 转移
// 已处于 Open 时是空操作，不会重复通知宿主
func (c *OverlayModeController) Open() {
	if c.state.OverlayOpen {
		return
	}
	c.state.SetOverlayOpen(true)
	c.window.SetClickThrough(false)
	log.Printf("[Overlay] opened, click-through disabled")
}

// Close 执行 Open -> Closed 转移
func (c *OverlayModeController) Close() {
	if !c.state.OverlayOpen {
		return
	}
	c.state.SetOverlayOpen(false)
	c.window.SetClickThrough(true)
	log.Printf("[Overlay] closed, click-through enabled")
}

// Update 处理本帧的触发源
// 外部 open 通知、快捷键、Escape 与面板外点击
func (c *OverlayModeController) Update() {
	c.HandleExternalTrigger()

	if !c.state.OverlayOpen {
		if c.shortcutEnabled() && isShortcutJustPressed() {
			c.Open()
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		c.Close()
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if c.PanelContains == nil || !c.PanelContains(x, y) {
			c.Close()
		}
	}
}

// HandleExternalTrigger 消费外部投递的 open 通知（非阻塞）
func (c *OverlayModeController) HandleExternalTrigger() {
	if c.openTrigger == nil {
		return
	}
	select {
	case <-c.openTrigger:
		c.Open()
	default:
	}
}

func (c *OverlayModeController) shortcutEnabled() bool {
	return c.ShortcutEnabled == nil || c.ShortcutEnabled()
}

// isShortcutJustPressed 检测 Ctrl + . 快捷键
func isShortcutJustPressed() bool {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	return ctrl && inpututil.IsKeyJustPressed(ebiten.KeyPeriod)
}
