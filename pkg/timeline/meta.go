package timeline

import "math"

// ClampFPS 将帧率钳制到 [MinFPS, MaxFPS]
//
// 非有限值或未设置（<= 0）回退到 DefaultFPS。
// 幂等：ClampFPS(ClampFPS(x)) == ClampFPS(x)。
func ClampFPS(fps float64) float64 {
	if math.IsNaN(fps) || math.IsInf(fps, 0) || fps <= 0 {
		return DefaultFPS
	}
	if fps < MinFPS {
		return MinFPS
	}
	if fps > MaxFPS {
		return MaxFPS
	}
	return fps
}

// ClampMultiplier 将单个倍率钳制为有限且 >= MinMultiplier 的值
//
// 非有限值回退到 DefaultMultiplier。
func ClampMultiplier(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultMultiplier
	}
	if v < MinMultiplier {
		return MinMultiplier
	}
	return v
}

// ClampSpeedScale 将全局速度倍率钳制到 [MinSpeedScale, MaxSpeedScale]
//
// 非有限值回退到 1.0（正常速度）。
func ClampSpeedScale(s float64) float64 {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 1.0
	}
	if s < MinSpeedScale {
		return MinSpeedScale
	}
	if s > MaxSpeedScale {
		return MaxSpeedScale
	}
	return s
}

// NormalizeMultipliers 将倍率数组调整到指定长度并钳制每个元素
//
// 结果长度恰好为 length：偏短的位置补 DefaultMultiplier，偏长截断。
// 前 min(len(m), length) 个元素与输入一致（钳制后）。
// 始终返回新切片，不共享输入的底层数组。
func NormalizeMultipliers(m []float64, length int) []float64 {
	if length < 0 {
		length = 0
	}
	out := make([]float64, length)
	for i := range out {
		if i < len(m) {
			out[i] = ClampMultiplier(m[i])
		} else {
			out[i] = DefaultMultiplier
		}
	}
	return out
}

// NormalizeMeta 规范化单条动画元数据
//
// 返回的记录满足：FPS 已钳制；Loop 仅在原值为显式布尔时保留
// （nil 保持 nil，读取时视为 true）；Multipliers 长度恰好为
// sequenceLength。对已规范化的记录再次规范化得到相等记录
//（MetaEquals 为 true），这保证了"每次读取都规范化"不会造成
// 写回风暴。
func NormalizeMeta(meta Meta, sequenceLength int) Meta {
	return Meta{
		Loop:        meta.Loop,
		FPS:         ClampFPS(meta.FPS),
		Multipliers: NormalizeMultipliers(meta.Multipliers, sequenceLength),
	}
}

// MetaEquals 比较两条元数据是否等价
//
// 比较项：循环语义（nil 与 &true 等价）、钳制后的 FPS、
// 逐元素倍率（容差 MetaEpsilon）。长度不同的倍率数组视为不等。
func MetaEquals(a, b Meta) bool {
	if a.LoopEnabled() != b.LoopEnabled() {
		return false
	}
	if math.Abs(ClampFPS(a.FPS)-ClampFPS(b.FPS)) > MetaEpsilon {
		return false
	}
	if len(a.Multipliers) != len(b.Multipliers) {
		return false
	}
	for i := range a.Multipliers {
		if math.Abs(ClampMultiplier(a.Multipliers[i])-ClampMultiplier(b.Multipliers[i])) > MetaEpsilon {
			return false
		}
	}
	return true
}
