package config

// PetCatalog 宠物目录文件的顶层结构
// 对应 assets/config/pets.yaml
type PetCatalog struct {
	// Pets 所有已注册宠物的配置列表
	Pets []PetConfig `yaml:"pets"`
}

// PetConfig 单个宠物的完整配置
// 包含精灵图集引用和动画表
type PetConfig struct {
	// ID 宠物种类标识（如 "fox"），必须属于封闭的种类集合
	ID string `yaml:"id"`

	// Name 显示名称（用于设置面板）
	Name string `yaml:"name"`

	// AtlasFile 精灵图集路径（相对于项目根目录，嵌入资源）
	AtlasFile string `yaml:"atlas_file"`

	// AtlasWidth/AtlasHeight 图集总像素尺寸
	AtlasWidth  int `yaml:"atlas_width"`
	AtlasHeight int `yaml:"atlas_height"`

	// FrameWidth/FrameHeight 单帧像素尺寸
	// 所有帧坐标都按朝右绘制，朝左仅在渲染时水平翻转
	FrameWidth  int `yaml:"frame_width"`
	FrameHeight int `yaml:"frame_height"`

	// Animations 动画表：动画名称 -> 帧序列与帧时长
	// 必须覆盖全部四种动画名称（idle/run/jump/fall）
	Animations map[string]AnimationConfig `yaml:"animations"`
}

// AnimationConfig 单个动画的帧序列配置
type AnimationConfig struct {
	// FrameDurationMs 每帧时长（毫秒），必须严格为正
	FrameDurationMs int `yaml:"frame_duration_ms"`

	// Frames 有序的帧原点序列，至少一帧
	Frames []FrameOffset `yaml:"frames"`
}

// FrameOffset 帧在图集中的像素原点
type FrameOffset struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}
