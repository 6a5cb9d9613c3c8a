package config

import (
	"fmt"

	"github.com/decker502/deskpet/pkg/embedded"
	"github.com/decker502/deskpet/pkg/types"
	"gopkg.in/yaml.v3"
)

// PetConfigRegistry 宠物配置注册表
// 在构造时完成全部校验：任何一个宠物的动画表不完整都视为致命错误，
// 应用拒绝启动，而不是等到首次渲染才失败。
// 注册表在进程生命周期内保持只读。
type PetConfigRegistry struct {
	petMap map[types.PetKind]*PetConfig // 按种类索引的配置映射
	kinds  []types.PetKind              // 注册顺序（用于 UI 遍历）
}

// NewPetConfigRegistry 从嵌入资源加载宠物目录并构造注册表
//
// 参数：
//   - configPath: 目录文件路径（如 "assets/config/pets.yaml"）
//
// 返回：
//   - *PetConfigRegistry: 注册表实例
//   - error: 读取、解析或校验错误（任一错误都应视为致命）
func NewPetConfigRegistry(configPath string) (*PetConfigRegistry, error) {
	data, err := embedded.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pet catalog %s: %w", configPath, err)
	}
	return NewPetConfigRegistryFromBytes(data)
}

// NewPetConfigRegistryFromBytes 从 YAML 字节构造注册表（便于测试）
func NewPetConfigRegistryFromBytes(data []byte) (*PetConfigRegistry, error) {
	var catalog PetCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse pet catalog: %w", err)
	}

	registry := &PetConfigRegistry{
		petMap: make(map[types.PetKind]*PetConfig),
	}

	for i := range catalog.Pets {
		pet := &catalog.Pets[i]
		kind := types.PetKind(pet.ID)

		if err := validatePet(kind, pet); err != nil {
			return nil, err
		}
		if _, exists := registry.petMap[kind]; exists {
			return nil, fmt.Errorf("pet %q: duplicate catalog entry", pet.ID)
		}

		registry.petMap[kind] = pet
		registry.kinds = append(registry.kinds, kind)
	}

	// 封闭集合中的每个种类都必须可选
	for _, kind := range types.AllPetKinds() {
		if _, ok := registry.petMap[kind]; !ok {
			return nil, fmt.Errorf("pet catalog missing entry for kind %q", kind)
		}
	}

	return registry, nil
}

// validatePet 校验单个宠物配置
// 校验规则：种类合法、图集与帧尺寸为正、动画表覆盖全部四种动画名称、
// 每个动画至少一帧且帧时长严格为正、帧矩形不越出图集边界。
func validatePet(kind types.PetKind, pet *PetConfig) error {
	if !kind.Valid() {
		return fmt.Errorf("pet %q: unknown pet kind", pet.ID)
	}
	if pet.AtlasFile == "" {
		return fmt.Errorf("pet %q: atlas_file is required", pet.ID)
	}
	if pet.AtlasWidth <= 0 || pet.AtlasHeight <= 0 {
		return fmt.Errorf("pet %q: atlas size must be positive, got %dx%d",
			pet.ID, pet.AtlasWidth, pet.AtlasHeight)
	}
	if pet.FrameWidth <= 0 || pet.FrameHeight <= 0 {
		return fmt.Errorf("pet %q: frame size must be positive, got %dx%d",
			pet.ID, pet.FrameWidth, pet.FrameHeight)
	}

	for _, name := range types.AllAnimationNames() {
		anim, ok := pet.Animations[string(name)]
		if !ok {
			return fmt.Errorf("pet %q: animation table missing %q", pet.ID, name)
		}
		if len(anim.Frames) == 0 {
			return fmt.Errorf("pet %q: animation %q has no frames", pet.ID, name)
		}
		if anim.FrameDurationMs <= 0 {
			return fmt.Errorf("pet %q: animation %q frame_duration_ms must be positive, got %d",
				pet.ID, name, anim.FrameDurationMs)
		}
		for i, frame := range anim.Frames {
			if frame.X < 0 || frame.Y < 0 ||
				frame.X+pet.FrameWidth > pet.AtlasWidth ||
				frame.Y+pet.FrameHeight > pet.AtlasHeight {
				return fmt.Errorf("pet %q: animation %q frame %d at (%d,%d) exceeds atlas bounds %dx%d",
					pet.ID, name, i, frame.X, frame.Y, pet.AtlasWidth, pet.AtlasHeight)
			}
		}
	}

	// 动画表中出现未知动画名称同样视为配置错误
	for name := range pet.Animations {
		if !types.AnimationName(name).Valid() {
			return fmt.Errorf("pet %q: unknown animation name %q", pet.ID, name)
		}
	}

	return nil
}

// Get 返回指定种类的完整配置
func (r *PetConfigRegistry) Get(kind types.PetKind) (*PetConfig, error) {
	pet, ok := r.petMap[kind]
	if !ok {
		return nil, fmt.Errorf("unknown pet kind %q", kind)
	}
	return pet, nil
}

// TableFor 返回指定种类中某个动画的帧配置
// 注册表构造时已校验完整性，查不到即为调用方传入了非法种类
func (r *PetConfigRegistry) TableFor(kind types.PetKind, name types.AnimationName) (AnimationConfig, error) {
	pet, ok := r.petMap[kind]
	if !ok {
		return AnimationConfig{}, fmt.Errorf("unknown pet kind %q", kind)
	}
	anim, ok := pet.Animations[string(name)]
	if !ok {
		return AnimationConfig{}, fmt.Errorf("pet %q: no animation %q", kind, name)
	}
	return anim, nil
}

// AtlasFor 返回指定种类的图集路径及其像素尺寸
func (r *PetConfigRegistry) AtlasFor(kind types.PetKind) (path string, width, height int, err error) {
	pet, ok := r.petMap[kind]
	if !ok {
		return "", 0, 0, fmt.Errorf("unknown pet kind %q", kind)
	}
	return pet.AtlasFile, pet.AtlasWidth, pet.AtlasHeight, nil
}

// Kinds 返回所有已注册种类（按目录文件顺序）
func (r *PetConfigRegistry) Kinds() []types.PetKind {
	return r.kinds
}
