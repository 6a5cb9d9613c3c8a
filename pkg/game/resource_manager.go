package game

import (
	"fmt"
	"image"

	_ "image/png" // Register PNG decoder

	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/embedded"
	"github.com/decker502/deskpet/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// ResourceManager 资源管理器
// 从嵌入资源加载并缓存宠物的精灵图集。图集在进程生命周期内只读，
// 由注册表持有引用、精灵解析器共享使用。
type ResourceManager struct {
	registry   *config.PetConfigRegistry
	atlasCache map[types.PetKind]*ebiten.Image
}

// NewResourceManager 创建资源管理器
func NewResourceManager(registry *config.PetConfigRegistry) *ResourceManager {
	return &ResourceManager{
		registry:   registry,
		atlasCache: make(map[types.PetKind]*ebiten.Image),
	}
}

// LoadAllAtlases 预加载全部已注册宠物的图集
// 任何一张图集缺失或损坏都返回错误——宁可启动失败，
// 也不要首次渲染时才发现资源不可用
func (rm *ResourceManager) LoadAllAtlases() error {
	for _, kind := range rm.registry.Kinds() {
		if _, err := rm.Atlas(kind); err != nil {
			return err
		}
	}
	return nil
}

// Atlas 返回指定宠物的图集，按需加载并缓存
func (rm *ResourceManager) Atlas(kind types.PetKind) (*ebiten.Image, error) {
	if cached, exists := rm.atlasCache[kind]; exists {
		return cached, nil
	}

	path, _, _, err := rm.registry.AtlasFor(kind)
	if err != nil {
		return nil, err
	}

	file, err := embedded.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open atlas %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode atlas %s: %w", path, err)
	}

	atlas := ebiten.NewImageFromImage(img)
	rm.atlasCache[kind] = atlas
	return atlas, nil
}
