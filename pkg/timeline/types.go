// Package timeline 实现精灵动画的时间线核心逻辑
//
// 本包是纯逻辑层：帧时长计算、播放序列解析、动画元数据规范化、
// 时间线编辑原语。不做任何 I/O，不依赖渲染层，
// 所有非法数值输入一律钳制或回退默认值，绝不 panic（编辑器
// 输入框随时可能出现半成品数字）。
package timeline

// Rect 精灵图集中的一个轴对齐矩形区域（单位：像素）
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Frame 运行时帧数据（不含编辑器内部的稳定 ID）
//
// 引擎只按索引读取帧，帧的所有权在编辑器状态存储层。
type Frame struct {
	// Rect 帧在图集中的矩形区域
	Rect Rect

	// Duration 显式帧时长（毫秒）
	// 0 表示未设置，此时时长由动画 fps 和位置倍率推导。
	// 显式时长优先于 fps/倍率（见 ComputeFrameDuration）。
	Duration float64
}

// Meta 单个动画的播放元数据
type Meta struct {
	// Loop 是否循环播放
	// nil = 使用默认值 true（与配置文件中"缺省即循环"语义一致）
	// &false = 显式设置为不循环
	// &true = 显式设置为循环
	Loop *bool

	// FPS 动画帧率，读取时钳制到 [MinFPS, MaxFPS]
	// 0 或非法值表示未设置，使用 DefaultFPS
	FPS float64

	// Multipliers 每个时间线位置的时长倍率
	// Multipliers[i] 作用于动画第 i 个时间线位置的基础时长（1000/fps 毫秒）。
	// 逻辑长度始终等于动画序列长度：偏短补 1.0，偏长截断。
	// 每个元素 >= MinMultiplier。
	Multipliers []float64
}

// LoopEnabled 解析 Loop 的三态语义（nil 视为 true）
func (m Meta) LoopEnabled() bool {
	return m.Loop == nil || *m.Loop
}

// Dataset 运行时数据集（只读视图）
//
// 由编辑器状态存储层构建，供播放控制器和渲染层消费。
// 调用方必须将其视为只读：BuildSequence 等函数返回的切片
// 可能与此处的数据共享底层数组。
type Dataset struct {
	// Frames 图集帧列表，帧索引即此切片下标
	Frames []Frame

	// Animations 动画名 -> 帧索引序列
	// 序列顺序即播放顺序，允许重复索引，序列可以为空。
	Animations map[string][]int

	// Order 动画声明顺序
	// Go 的 map 无序，初始动画选择需要"声明顺序中的第一个"，
	// 因此顺序单独维护。
	Order []string

	// Meta 动画名 -> 播放元数据
	Meta map[string]Meta

	// Autoplay 自动播放的动画名，"" 表示未设置
	Autoplay string
}
