// Package app 提供桌宠应用的核心包装器
//
// 该包将初始化与主循环逻辑从 main 包提取出来：main.go 只负责
// 命令行参数、嵌入资源注册和窗口属性，其余全部在这里装配。
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/decker502/deskpet/internal/motion"
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/game"
	"github.com/decker502/deskpet/pkg/modules"
	"github.com/decker502/deskpet/pkg/systems"
	"github.com/decker502/deskpet/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
)

// 默认窗口尺寸（宿主查询失败时的软回退）
const (
	DefaultWindowWidth  = 400
	DefaultWindowHeight = 300
)

const petsConfigPath = "assets/config/pets.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Pet 指定启动时显示的宠物（如 "fox"），为空则使用保存的设置
	Pet string
	// OpenTrigger 外部打开设置面板的通知通道（如托盘/信号），可为 nil
	OpenTrigger <-chan struct{}
}

// ebitenWindowPort 把指针穿透开关落到 Ebitengine 窗口上
type ebitenWindowPort struct{}

func (ebitenWindowPort) SetClickThrough(enabled bool) {
	ebiten.SetWindowMousePassthrough(enabled)
}

// App 是桌宠应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	registry        *config.PetConfigRegistry
	resourceManager *game.ResourceManager
	settingsManager *game.SettingsManager
	statsMonitor    *game.StatsMonitor

	state   *game.PetVisualState
	tracker *systems.WindowGeometryTracker
	clock   *systems.AnimationClock
	poller  *systems.MotionPoller
	overlay *systems.OverlayModeController
	panel   *modules.SettingsPanelModule
	render  *systems.PetRenderSystem

	verbose bool
}

// NewApp 创建并初始化桌宠应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 宠物目录配置不合法是致命错误，直接返回 error 由 main 终止进程。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 加载并校验宠物目录（启动即失败策略）
	registry, err := config.NewPetConfigRegistry(petsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("宠物配置加载失败: %w", err)
	}
	log.Printf("[App] 宠物目录加载完成: %d 种宠物", len(registry.Kinds()))

	// 预加载全部图集（缺图同样是致命错误）
	resourceManager := game.NewResourceManager(registry)
	if err := resourceManager.LoadAllAtlases(); err != nil {
		return nil, fmt.Errorf("图集加载失败: %w", err)
	}

	// 设置存储（gdata 打不开时降级为仅内存）
	gdataManager, err := gdata.Open(gdata.Config{AppName: "deskpet"})
	if err != nil {
		log.Printf("[App] 设置存储不可用，降级为仅内存模式: %v", err)
		gdataManager = nil
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}

	// 命令行指定的宠物优先于保存的设置
	if cfg.Pet != "" {
		settingsManager.SetSelectedPet(types.PetKind(cfg.Pet))
	}

	state := game.NewPetVisualState(settingsManager.SelectedPetKind())
	tracker := systems.NewWindowGeometryTracker(state, DefaultWindowWidth, DefaultWindowHeight)

	// 启动时先用显示器尺寸做一次回退测量，宿主几何到达前先顶着用
	mw, mh := ebiten.Monitor().Size()
	seedMonitorFallback(tracker, mw, mh)

	engine := motion.NewEngine()
	clock := systems.NewAnimationClock(registry, state)
	poller := systems.NewMotionPoller(engine, state, clock, settingsManager.GetSettings().PollIntervalMs)

	overlay := systems.NewOverlayModeController(state, ebitenWindowPort{}, cfg.OpenTrigger)
	overlay.ShortcutEnabled = func() bool {
		return settingsManager.GetSettings().ShortcutEnabled
	}

	statsMonitor := game.NewStatsMonitor()
	statsMonitor.Start()

	app := &App{
		registry:        registry,
		resourceManager: resourceManager,
		settingsManager: settingsManager,
		statsMonitor:    statsMonitor,
		state:           state,
		tracker:         tracker,
		clock:           clock,
		poller:          poller,
		overlay:         overlay,
		render:          systems.NewPetRenderSystem(systems.NewSpriteResolver(registry), resourceManager),
		verbose:         cfg.Verbose,
	}

	app.panel = modules.NewSettingsPanelModule(settingsManager, statsMonitor, modules.SettingsPanelCallbacks{
		OnSelectPet:         app.selectPet,
		OnToggleShortcut:    app.toggleShortcut,
		OnCyclePollInterval: app.cyclePollInterval,
		OnResetPosition:     poller.Reset,
		OnRequestClose:      overlay.Close,
	})
	overlay.PanelContains = app.panel.Contains

	log.Printf("[App] 初始化完成: pet=%s interval=%dms", state.Kind, settingsManager.GetSettings().PollIntervalMs)
	return app, nil
}

// selectPet 切换当前宠物并持久化选择
func (a *App) selectPet(kind types.PetKind) {
	if kind == a.state.Kind {
		return
	}
	a.state.SwitchKind(kind)
	a.clock.Rebind()
	a.settingsManager.SetSelectedPet(kind)
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] 设置保存失败: %v", err)
	}
	log.Printf("[App] 切换宠物: %s", kind)
}

// pollIntervalSteps 设置面板里轮询间隔的可选档位（毫秒）
var pollIntervalSteps = []int{20, 50, 100, 200, 500}

// toggleShortcut 切换快捷键开关并持久化
func (a *App) toggleShortcut() {
	enabled := !a.settingsManager.GetSettings().ShortcutEnabled
	a.settingsManager.SetShortcutEnabled(enabled)
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] 设置保存失败: %v", err)
	}
	log.Printf("[App] 快捷键开关: %v", enabled)
}

// cyclePollInterval 轮换到下一个轮询间隔档位并应用到轮询器
func (a *App) cyclePollInterval() {
	current := a.settingsManager.GetSettings().PollIntervalMs
	next := pollIntervalSteps[0]
	for i, step := range pollIntervalSteps {
		if step >= current {
			next = pollIntervalSteps[(i+1)%len(pollIntervalSteps)]
			break
		}
	}
	a.settingsManager.SetPollIntervalMs(next)
	a.poller.SetIntervalMs(next)
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] 设置保存失败: %v", err)
	}
	log.Printf("[App] 轮询间隔: %dms", next)
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	deltaTime := 1.0 / 60.0

	// 先处理遮罩状态机，再推进轮询与动画
	a.overlay.Update()
	a.poller.Update(deltaTime)
	a.clock.Update(deltaTime)

	a.panel.SetVisible(a.state.OverlayOpen)
	a.panel.Update(deltaTime, a.state.WindowWidth, a.state.WindowHeight)
	return nil
}

// Draw 绘制宠物与设置面板
func (a *App) Draw(screen *ebiten.Image) {
	a.render.Draw(screen, a.state)
	a.panel.Draw(screen)
}

// seedMonitorFallback 用显示器尺寸做启动回退测量
// Monitor().Size() 返回的是设备无关像素，已经是逻辑尺寸，
// 不能再交给跟踪器除一次缩放系数，scale 按 1 处理
func seedMonitorFallback(tracker *systems.WindowGeometryTracker, monitorWidth, monitorHeight int) {
	if monitorWidth > 0 && monitorHeight > 0 {
		tracker.ApplyFallbackMeasure(float64(monitorWidth), float64(monitorHeight), 1)
		return
	}
	tracker.ApplyDefaultSize()
}

// LayoutF 接收宿主窗口的逻辑尺寸
func (a *App) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return a.layoutWithScale(outsideWidth, outsideHeight, ebiten.Monitor().DeviceScaleFactor())
}

// layoutWithScale 更新几何跟踪并返回渲染目标尺寸
//
// outside 是设备无关尺寸。乘回缩放系数得到物理像素交给几何
// 追踪器，保证和宿主上报路径走同一套除以缩放的修正；渲染目标
// 则保持逻辑尺寸原样返回，位置坐标和屏幕像素一一对应，
// 物理像素的放大交给 Ebitengine。
func (a *App) layoutWithScale(outsideWidth, outsideHeight, scale float64) (float64, float64) {
	if scale <= 0 {
		scale = 1
	}
	a.tracker.ApplyHostSize(outsideWidth*scale, outsideHeight*scale, scale)
	return outsideWidth, outsideHeight
}

// Layout 实现 ebiten.Game 接口
// 实现了 LayoutF 时 Ebitengine 不会调用这里，保留委托以满足接口
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := a.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

// Shutdown 退出前保存设置并停止后台采样
func (a *App) Shutdown() {
	a.statsMonitor.Stop()
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] 退出时保存设置失败: %v", err)
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
