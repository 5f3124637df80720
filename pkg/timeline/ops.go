package timeline

// 时间线编辑原语
//
// 每个操作同时作用于 (序列, 倍率数组) 二元组并保持两者步调一致：
// 序列插入一个位置，倍率数组就在同一位置插入一个值。
// 所有位置参数一律钳制，不返回错误。
// 输入的倍率数组先规范化到序列长度，保证锁步不变量成立。

// InsertPositions 在 pos 处插入若干帧索引
//
// 倍率数组在相同位置插入等量的 DefaultMultiplier。
// pos 钳制到 [0, len(seq)]（len(seq) 即追加）。
// 返回新切片，不修改输入。
func InsertPositions(seq []int, multipliers []float64, pos int, frames ...int) ([]int, []float64) {
	multipliers = NormalizeMultipliers(multipliers, len(seq))
	pos = clampInsertPos(pos, len(seq))

	newSeq := make([]int, 0, len(seq)+len(frames))
	newSeq = append(newSeq, seq[:pos]...)
	newSeq = append(newSeq, frames...)
	newSeq = append(newSeq, seq[pos:]...)

	newMult := make([]float64, 0, len(multipliers)+len(frames))
	newMult = append(newMult, multipliers[:pos]...)
	for range frames {
		newMult = append(newMult, DefaultMultiplier)
	}
	newMult = append(newMult, multipliers[pos:]...)

	return newSeq, newMult
}

// RemovePosition 删除一个时间线位置
//
// 倍率数组丢弃同一位置，其余元素只发生平移。
// pos 越界或序列为空时原样返回。
func RemovePosition(seq []int, multipliers []float64, pos int) ([]int, []float64) {
	multipliers = NormalizeMultipliers(multipliers, len(seq))
	if len(seq) == 0 || pos < 0 || pos >= len(seq) {
		return seq, multipliers
	}

	newSeq := make([]int, 0, len(seq)-1)
	newSeq = append(newSeq, seq[:pos]...)
	newSeq = append(newSeq, seq[pos+1:]...)

	newMult := make([]float64, 0, len(multipliers)-1)
	newMult = append(newMult, multipliers[:pos]...)
	newMult = append(newMult, multipliers[pos+1:]...)

	return newSeq, newMult
}

// MovePosition 将一个时间线位置搬到另一个下标
//
// 该位置的倍率随之搬移（不重置）。from/to 钳制到
// [0, len(seq)-1]，from == to 时原样返回。
func MovePosition(seq []int, multipliers []float64, from, to int) ([]int, []float64) {
	multipliers = NormalizeMultipliers(multipliers, len(seq))
	if len(seq) == 0 {
		return seq, multipliers
	}
	from = clampPos(from, len(seq))
	to = clampPos(to, len(seq))
	if from == to {
		return seq, multipliers
	}

	newSeq := make([]int, 0, len(seq))
	newSeq = append(newSeq, seq[:from]...)
	newSeq = append(newSeq, seq[from+1:]...)
	newMult := make([]float64, 0, len(multipliers))
	newMult = append(newMult, multipliers[:from]...)
	newMult = append(newMult, multipliers[from+1:]...)

	frame := seq[from]
	mult := multipliers[from]

	newSeq = append(newSeq[:to], append([]int{frame}, newSeq[to:]...)...)
	newMult = append(newMult[:to], append([]float64{mult}, newMult[to:]...)...)

	return newSeq, newMult
}

func clampPos(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length-1 {
		return length - 1
	}
	return pos
}

func clampInsertPos(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}
