package modules

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/decker502/deskpet/pkg/game"
	"github.com/decker502/deskpet/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// 面板视觉常量
var (
	// 面板背景颜色（半透明深色）
	panelBackgroundColor = color.RGBA{R: 30, G: 30, B: 40, A: 235}

	// 面板边框颜色
	panelBorderColor = color.RGBA{R: 100, G: 100, B: 110, A: 255}

	// 按钮正常状态颜色
	buttonNormalColor = color.RGBA{R: 70, G: 70, B: 80, A: 255}

	// 当前选中宠物的按钮颜色
	buttonSelectedColor = color.RGBA{R: 80, G: 120, B: 80, A: 255}

	// 关闭按钮颜色
	buttonCloseColor = color.RGBA{R: 120, G: 60, B: 60, A: 255}
)

// 面板布局常量
const (
	panelWidth  = 220
	panelHeight = 330
	panelMargin = 16

	buttonHeight  = 28
	buttonSpacing = 8

	// 淡入淡出时长（秒）
	panelFadeDuration = 0.18
)

// SettingsPanelCallbacks 设置面板回调函数集合
type SettingsPanelCallbacks struct {
	OnSelectPet         func(kind types.PetKind) // 切换宠物回调
	OnToggleShortcut    func()                   // 快捷键开关切换回调
	OnCyclePollInterval func()                   // 轮询间隔档位切换回调
	OnResetPosition     func()                   // 重置位置回调
	OnRequestClose      func()                   // 请求关闭面板回调（由外部状态机执行实际关闭）
}

// panelButton 面板内的一个可点击区域
type panelButton struct {
	label   string
	rect    image.Rectangle
	clr     color.RGBA
	onClick func()
}

// SettingsPanelModule 设置面板模块
//
// 职责：
//   - 渲染宠物切换按钮、重置位置按钮、关闭按钮和主机资源占用
//   - 处理面板内的点击，通过回调与外部交互
//   - 打开/关闭时做透明度过渡
//
// 面板本身不拥有打开/关闭状态机：可见性由外部（覆盖层控制器）
// 通过 SetVisible 驱动，点击关闭按钮只触发 OnRequestClose 回调。
type SettingsPanelModule struct {
	settingsManager *game.SettingsManager
	statsMonitor    *game.StatsMonitor
	callbacks       SettingsPanelCallbacks

	// 可见性与淡入淡出
	visible bool
	alpha   float32
	fade    *gween.Tween

	// 每帧根据窗口尺寸重算的布局
	panelRect image.Rectangle
	buttons   []panelButton
}

// NewSettingsPanelModule 创建设置面板模块
func NewSettingsPanelModule(sm *game.SettingsManager, stats *game.StatsMonitor, callbacks SettingsPanelCallbacks) *SettingsPanelModule {
	return &SettingsPanelModule{
		settingsManager: sm,
		statsMonitor:    stats,
		callbacks:       callbacks,
	}
}

// SetVisible 设置面板可见性并启动透明度过渡
func (m *SettingsPanelModule) SetVisible(visible bool) {
	if m.visible == visible {
		return
	}
	m.visible = visible
	if visible {
		m.fade = gween.New(m.alpha, 1, panelFadeDuration, ease.OutQuad)
	} else {
		m.fade = gween.New(m.alpha, 0, panelFadeDuration, ease.OutQuad)
	}
	log.Printf("[SettingsPanel] 可见性切换: %v", visible)
}

// Visible 返回面板当前是否可见
func (m *SettingsPanelModule) Visible() bool {
	return m.visible
}

// Contains 判断窗口坐标是否落在面板区域内
//
// 供覆盖层控制器做面板外点击检测。面板不可见时恒为 false。
func (m *SettingsPanelModule) Contains(x, y int) bool {
	if !m.visible {
		return false
	}
	return image.Pt(x, y).In(m.panelRect)
}

// Update 更新面板布局、过渡动画和点击处理
func (m *SettingsPanelModule) Update(dt float64, windowWidth, windowHeight int) {
	if m.fade != nil {
		value, done := m.fade.Update(float32(dt))
		m.alpha = value
		if done {
			m.fade = nil
		}
	}

	m.layout(windowWidth, windowHeight)

	if !m.visible {
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		for _, btn := range m.buttons {
			if image.Pt(x, y).In(btn.rect) && btn.onClick != nil {
				log.Printf("[SettingsPanel] 点击按钮: %s", btn.label)
				btn.onClick()
				break
			}
		}
	}
}

// layout 重算面板与按钮矩形
//
// 面板固定在窗口右上角，窗口太小时贴左上角。
func (m *SettingsPanelModule) layout(windowWidth, windowHeight int) {
	x := windowWidth - panelWidth - panelMargin
	if x < 0 {
		x = 0
	}
	y := panelMargin
	m.panelRect = image.Rect(x, y, x+panelWidth, y+panelHeight)

	m.buttons = m.buttons[:0]
	innerX := x + panelMargin
	innerW := panelWidth - 2*panelMargin
	cursorY := y + panelMargin + 16

	selected := m.settingsManager.SelectedPetKind()
	for _, kind := range types.AllPetKinds() {
		clr := buttonNormalColor
		if kind == selected {
			clr = buttonSelectedColor
		}
		k := kind
		m.buttons = append(m.buttons, panelButton{
			label: string(kind),
			rect:  image.Rect(innerX, cursorY, innerX+innerW, cursorY+buttonHeight),
			clr:   clr,
			onClick: func() {
				if m.callbacks.OnSelectPet != nil {
					m.callbacks.OnSelectPet(k)
				}
			},
		})
		cursorY += buttonHeight + buttonSpacing
	}

	settings := m.settingsManager.GetSettings()
	shortcutLabel := "shortcut: off"
	if settings.ShortcutEnabled {
		shortcutLabel = "shortcut: on"
	}
	m.buttons = append(m.buttons, panelButton{
		label: shortcutLabel,
		rect:  image.Rect(innerX, cursorY, innerX+innerW, cursorY+buttonHeight),
		clr:   buttonNormalColor,
		onClick: func() {
			if m.callbacks.OnToggleShortcut != nil {
				m.callbacks.OnToggleShortcut()
			}
		},
	})
	cursorY += buttonHeight + buttonSpacing

	m.buttons = append(m.buttons, panelButton{
		label: fmt.Sprintf("poll: %dms", settings.PollIntervalMs),
		rect:  image.Rect(innerX, cursorY, innerX+innerW, cursorY+buttonHeight),
		clr:   buttonNormalColor,
		onClick: func() {
			if m.callbacks.OnCyclePollInterval != nil {
				m.callbacks.OnCyclePollInterval()
			}
		},
	})
	cursorY += buttonHeight + buttonSpacing

	cursorY += buttonSpacing
	m.buttons = append(m.buttons, panelButton{
		label: "reset position",
		rect:  image.Rect(innerX, cursorY, innerX+innerW, cursorY+buttonHeight),
		clr:   buttonNormalColor,
		onClick: func() {
			if m.callbacks.OnResetPosition != nil {
				m.callbacks.OnResetPosition()
			}
		},
	})
	cursorY += buttonHeight + buttonSpacing

	m.buttons = append(m.buttons, panelButton{
		label: "close",
		rect:  image.Rect(innerX, cursorY, innerX+innerW, cursorY+buttonHeight),
		clr:   buttonCloseColor,
		onClick: func() {
			if m.callbacks.OnRequestClose != nil {
				m.callbacks.OnRequestClose()
			}
		},
	})
}

// Draw 绘制面板
func (m *SettingsPanelModule) Draw(screen *ebiten.Image) {
	if m.alpha <= 0 {
		return
	}

	px := float32(m.panelRect.Min.X)
	py := float32(m.panelRect.Min.Y)
	pw := float32(m.panelRect.Dx())
	ph := float32(m.panelRect.Dy())

	vector.DrawFilledRect(screen, px, py, pw, ph, scaleAlpha(panelBackgroundColor, m.alpha), true)
	vector.StrokeRect(screen, px, py, pw, ph, 1, scaleAlpha(panelBorderColor, m.alpha), true)

	ebitenutil.DebugPrintAt(screen, "deskpet", m.panelRect.Min.X+panelMargin, m.panelRect.Min.Y+4)

	for _, btn := range m.buttons {
		vector.DrawFilledRect(screen,
			float32(btn.rect.Min.X), float32(btn.rect.Min.Y),
			float32(btn.rect.Dx()), float32(btn.rect.Dy()),
			scaleAlpha(btn.clr, m.alpha), true)
		ebitenutil.DebugPrintAt(screen, btn.label, btn.rect.Min.X+8, btn.rect.Min.Y+6)
	}

	if m.statsMonitor != nil {
		cpu, mem := m.statsMonitor.Stats()
		statsLine := fmt.Sprintf("CPU %.1f%%  MEM %.1f%%", cpu, mem)
		ebitenutil.DebugPrintAt(screen, statsLine, m.panelRect.Min.X+panelMargin, m.panelRect.Max.Y-24)
	}
}

// scaleAlpha 按过渡进度缩放颜色透明度
//
// color.RGBA 是预乘格式，四个通道要一起缩放。
func scaleAlpha(clr color.RGBA, alpha float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(clr.R) * alpha),
		G: uint8(float32(clr.G) * alpha),
		B: uint8(float32(clr.B) * alpha),
		A: uint8(float32(clr.A) * alpha),
	}
}
