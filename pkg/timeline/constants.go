package timeline

// 时间线引擎的数值边界
//
// 所有边界都在读取端生效：存储层里可能躺着任意用户输入，
// 引擎保证自己消费到的值永远在这些范围内。
const (
	// DefaultFPS 动画元数据缺省帧率
	DefaultFPS = 5.0

	// MinFPS / MaxFPS 动画帧率的钳制范围
	MinFPS = 1.0
	MaxFPS = 60.0

	// MinMultiplier 时间线位置倍率的最小值
	MinMultiplier = 0.1

	// DefaultMultiplier 新时间线位置的缺省倍率
	DefaultMultiplier = 1.0

	// DefaultFrameDuration 数据集级别的缺省帧时长（毫秒）
	// 帧缺失时使用（约 83.33ms，即 12fps）。
	DefaultFrameDuration = 1000.0 / 12.0

	// MinSpeedScale / MaxSpeedScale 全局速度倍率的钳制范围
	MinSpeedScale = 0.01
	MaxSpeedScale = 32.0

	// MinFrameDuration 速度缩放前的帧时长下限（毫秒）
	MinFrameDuration = 1.0

	// MetaEpsilon 元数据相等性比较的容差
	// 用于抑制规范化过程中的冗余写回，避免反应式 UI 的更新死循环。
	MetaEpsilon = 1e-4
)
