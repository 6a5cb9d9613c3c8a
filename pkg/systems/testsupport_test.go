package systems

import (
	"testing"

	"github.com/decker502/deskpet/pkg/config"
)

// testCatalogYAML 系统测试共用的最小宠物目录
// fox idle 为 5 帧 200ms；其余动画 2 帧 100ms；cat idle 为 4 帧
const testCatalogYAML = `
pets:
  - id: fox
    name: 狐狸
    atlas_file: assets/sprites/fox.png
    atlas_width: 160
    atlas_height: 128
    frame_width: 32
    frame_height: 32
    animations:
      idle:
        frame_duration_ms: 200
        frames:
          - {x: 0, y: 0}
          - {x: 32, y: 0}
          - {x: 64, y: 0}
          - {x: 96, y: 0}
          - {x: 128, y: 0}
      run:
        frame_duration_ms: 100
        frames:
          - {x: 0, y: 32}
          - {x: 32, y: 32}
      jump:
        frame_duration_ms: 100
        frames:
          - {x: 0, y: 64}
          - {x: 32, y: 64}
      fall:
        frame_duration_ms: 100
        frames:
          - {x: 0, y: 96}
          - {x: 32, y: 96}
  - id: cat
    name: 猫
    atlas_file: assets/sprites/cat.png
    atlas_width: 160
    atlas_height: 128
    frame_width: 32
    frame_height: 32
    animations:
      idle:
        frame_duration_ms: 150
        frames:
          - {x: 0, y: 0}
          - {x: 32, y: 0}
          - {x: 64, y: 0}
          - {x: 96, y: 0}
      run:
        frame_duration_ms: 100
        frames:
          - {x: 0, y: 32}
          - {x: 32, y: 32}
      jump:
        frame_duration_ms: 100
        frames:
          - {x: 0, y: 64}
          - {x: 32, y: 64}
      fall:
        frame_duration_ms: 100
        frames:
          - {x: 0, y: 96}
          - {x: 32, y: 96}
  - id: redPanda
    name: 小熊猫
    atlas_file: assets/sprites/red_panda.png
    atlas_width: 160
    atlas_height: 128
    frame_width: 32
    frame_height: 32
    animations:
      idle:
        frame_duration_ms: 200
        frames:
          - {x: 0, y: 0}
          - {x: 32, y: 0}
      run:
        frame_duration_ms: 100
        frames:
          - {x: 0, y: 32}
          - {x: 32, y: 32}
      jump:
        frame_duration_ms: 100
        frames:
          - {x: 0, y: 64}
      fall:
        frame_duration_ms: 100
        frames:
          - {x: 0, y: 96}
`

// newTestRegistry 构造系统测试共用的注册表
func newTestRegistry(t *testing.T) *config.PetConfigRegistry {
	t.Helper()
	registry, err := config.NewPetConfigRegistryFromBytes([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("failed to build test registry: %v", err)
	}
	return registry
}

// moveResult 脚本化的单次裁决方响应
type moveResult struct {
	x, y  float64
	token string
	err   error
}

// scriptedAuthority 按脚本返回响应的运动裁决方测试替身
// 脚本用尽后重复返回最后一条
type scriptedAuthority struct {
	moves      []moveResult
	moveIdx    int
	moveCalls  int
	reset      moveResult
	resetCalls int
}

func (a *scriptedAuthority) GetPetMovement(windowWidth, windowHeight int) (float64, float64, string, error) {
	a.moveCalls++
	if len(a.moves) == 0 {
		return 0, 0, "idle-right", nil
	}
	r := a.moves[a.moveIdx]
	if a.moveIdx < len(a.moves)-1 {
		a.moveIdx++
	}
	return r.x, r.y, r.token, r.err
}

func (a *scriptedAuthority) ResetPetPosition(windowWidth, windowHeight int) (float64, float64, string, error) {
	a.resetCalls++
	return a.reset.x, a.reset.y, a.reset.token, a.reset.err
}

// recordingWindowPort 记录 SetClickThrough 调用序列的窗口端口替身
type recordingWindowPort struct {
	calls []bool
}

func (w *recordingWindowPort) SetClickThrough(enabled bool) {
	w.calls = append(w.calls, enabled)
}
