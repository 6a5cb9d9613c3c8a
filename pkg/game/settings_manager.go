package game

import (
	"fmt"
	"log"

	"github.com/decker502/deskpet/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// PetSettings 全局宠物设置
type PetSettings struct {
	// SelectedPet 当前选中的宠物种类
	SelectedPet string `yaml:"selectedPet"`

	// ShortcutEnabled 是否启用打开设置面板的全局快捷键（Ctrl + .）
	ShortcutEnabled bool `yaml:"shortcutEnabled"`

	// PollIntervalMs 运动轮询间隔（毫秒），限制在 20 ~ 500
	PollIntervalMs int `yaml:"pollIntervalMs"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *PetSettings {
	return &PetSettings{
		SelectedPet:     string(types.PetFox),
		ShortcutEnabled: true,
		PollIntervalMs:  50,
	}
}

// SettingsManager 设置管理器
// 负责宠物设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *PetSettings   // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 如果加载设置失败返回错误（不影响创建）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置。
// 加载成功后对字段做合法性修正：未知的宠物种类回退到默认，
// 轮询间隔钳制到合法范围。
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loadedSettings PetSettings
	if err := yaml.Unmarshal(data, &loadedSettings); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sanitizeSettings(&loadedSettings)
	sm.settings = &loadedSettings
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *PetSettings {
	return sm.settings
}

// SelectedPetKind 返回当前选中的宠物种类
// 设置里的值非法时回退到默认种类
func (sm *SettingsManager) SelectedPetKind() types.PetKind {
	kind := types.PetKind(sm.settings.SelectedPet)
	if !kind.Valid() {
		return types.PetFox
	}
	return kind
}

// SetSelectedPet 设置选中的宠物种类
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSelectedPet(kind types.PetKind) {
	if !kind.Valid() {
		log.Printf("[SettingsManager] ignoring invalid pet kind %q", kind)
		return
	}
	sm.settings.SelectedPet = string(kind)
}

// SetShortcutEnabled 设置快捷键开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetShortcutEnabled(enabled bool) {
	sm.settings.ShortcutEnabled = enabled
}

// SetPollIntervalMs 设置运动轮询间隔
// 间隔会被限制在 20 ~ 500 毫秒范围内
func (sm *SettingsManager) SetPollIntervalMs(intervalMs int) {
	sm.settings.PollIntervalMs = clampPollInterval(intervalMs)
}

// sanitizeSettings 修正从持久层读出的设置
func sanitizeSettings(s *PetSettings) {
	if !types.PetKind(s.SelectedPet).Valid() {
		s.SelectedPet = string(types.PetFox)
	}
	s.PollIntervalMs = clampPollInterval(s.PollIntervalMs)
}

// clampPollInterval 将轮询间隔限制在 20 ~ 500 毫秒范围内
func clampPollInterval(intervalMs int) int {
	if intervalMs < 20 {
		return 20
	}
	if intervalMs > 500 {
		return 500
	}
	return intervalMs
}
