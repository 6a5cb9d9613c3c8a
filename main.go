package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/decker502/deskpet/pkg/app"
	"github.com/decker502/deskpet/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verboseFlag := flag.Bool("verbose", false, "启用详细日志输出")
	petFlag := flag.String("pet", "", "启动时显示的宠物（fox/cat/redPanda），为空则使用保存的设置")
	flag.Parse()

	// 初始化嵌入资源（assetsFS 在 embed.go 中声明）
	embedded.Init(assetsFS)

	// 托盘菜单的替身：SIGUSR1 触发打开设置面板
	openTrigger := make(chan struct{}, 1)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGUSR1)
	go func() {
		for range sigCh {
			select {
			case openTrigger <- struct{}{}:
			default:
			}
		}
	}()

	petApp, err := app.NewApp(app.Config{
		Verbose:     *verboseFlag,
		Pet:         *petFlag,
		OpenTrigger: openTrigger,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer petApp.Shutdown()

	// 无边框、置顶、透明的覆盖窗口；初始状态指针穿透开启
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(true)
	ebiten.SetWindowTitle("deskpet")
	ebiten.SetWindowSize(app.DefaultWindowWidth, app.DefaultWindowHeight)

	op := &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       true,
	}
	if err := ebiten.RunGameWithOptions(petApp, op); err != nil {
		log.Fatalf("运行失败: %v", err)
	}
}
