package timeline

import "math"

// ComputeFrameDuration 计算一帧的有效显示时长（毫秒）
//
// 取值优先级：
//  1. frame 为 nil：使用数据集级缺省时长 DefaultFrameDuration
//  2. 帧带显式 Duration：直接使用（下限 MinFrameDuration），
//     忽略 fps 和倍率 —— 显式时长永远优先
//  3. 否则：(1000 / fps) * multipliers[timelineIndex]，
//     fps 和倍率取自动画元数据，缺失时用默认值
//
// 最终结果统一除以速度倍率（speedScale 先钳制到
// [MinSpeedScale, MaxSpeedScale]，越快时长越短）。
// 缩放前的时长保证 >= MinFrameDuration 且有限；
// 缩放后不保证 1ms 下限（32 倍速下允许更短）。
func ComputeFrameDuration(frame *Frame, animName string, timelineIndex int, ds *Dataset, speedScale float64) float64 {
	speed := ClampSpeedScale(speedScale)

	if frame == nil {
		return DefaultFrameDuration / speed
	}

	// 显式帧时长优先
	if isFiniteDuration(frame.Duration) && frame.Duration > 0 {
		d := frame.Duration
		if d < MinFrameDuration {
			d = MinFrameDuration
		}
		return d / speed
	}

	fps := DefaultFPS
	multiplier := DefaultMultiplier
	if ds != nil {
		if meta, ok := ds.Meta[animName]; ok {
			fps = ClampFPS(meta.FPS)
			if timelineIndex >= 0 && timelineIndex < len(meta.Multipliers) {
				multiplier = ClampMultiplier(meta.Multipliers[timelineIndex])
			}
		}
	}

	d := (1000.0 / fps) * multiplier
	if !isFiniteDuration(d) || d < MinFrameDuration {
		d = MinFrameDuration
	}
	return d / speed
}

func isFiniteDuration(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0)
}
