package timeline

import (
	"reflect"
	"testing"
)

// TestInsertPositions 插入帧索引时倍率数组锁步插入默认值
func TestInsertPositions(t *testing.T) {
	seq := []int{0, 1, 2}
	mult := []float64{0.5, 1.5, 2.0}

	newSeq, newMult := InsertPositions(seq, mult, 1, 7, 8)

	if !reflect.DeepEqual(newSeq, []int{0, 7, 8, 1, 2}) {
		t.Errorf("序列 = %v", newSeq)
	}
	if !reflect.DeepEqual(newMult, []float64{0.5, 1.0, 1.0, 1.5, 2.0}) {
		t.Errorf("倍率 = %v", newMult)
	}
	if len(newSeq) != len(newMult) {
		t.Errorf("锁步被破坏: seq=%d mult=%d", len(newSeq), len(newMult))
	}

	// 原切片不被修改
	if !reflect.DeepEqual(seq, []int{0, 1, 2}) {
		t.Errorf("输入序列被修改: %v", seq)
	}
}

// TestInsertPositions_ClampAndPad 位置钳制、倍率数组先规范化到序列长度
func TestInsertPositions_ClampAndPad(t *testing.T) {
	// 越界位置钳制为追加
	newSeq, newMult := InsertPositions([]int{0, 1}, nil, 99, 5)
	if !reflect.DeepEqual(newSeq, []int{0, 1, 5}) {
		t.Errorf("序列 = %v", newSeq)
	}
	if !reflect.DeepEqual(newMult, []float64{1.0, 1.0, 1.0}) {
		t.Errorf("倍率 = %v", newMult)
	}

	// 负位置钳制为头部插入
	newSeq, _ = InsertPositions([]int{0, 1}, nil, -5, 9)
	if !reflect.DeepEqual(newSeq, []int{9, 0, 1}) {
		t.Errorf("序列 = %v", newSeq)
	}

	// 空序列插入
	newSeq, newMult = InsertPositions(nil, nil, 0, 3)
	if !reflect.DeepEqual(newSeq, []int{3}) || !reflect.DeepEqual(newMult, []float64{1.0}) {
		t.Errorf("空序列插入: seq=%v mult=%v", newSeq, newMult)
	}
}

// TestRemovePosition 删除位置 i 后倍率数组长度减一，其余元素仅平移
func TestRemovePosition(t *testing.T) {
	seq := []int{0, 1, 2, 3}
	mult := []float64{0.5, 1.5, 2.0, 3.0}

	newSeq, newMult := RemovePosition(seq, mult, 1)

	if !reflect.DeepEqual(newSeq, []int{0, 2, 3}) {
		t.Errorf("序列 = %v", newSeq)
	}
	if !reflect.DeepEqual(newMult, []float64{0.5, 2.0, 3.0}) {
		t.Errorf("倍率 = %v", newMult)
	}

	// 越界位置是空操作
	newSeq, newMult = RemovePosition(seq, mult, 99)
	if len(newSeq) != 4 || len(newMult) != 4 {
		t.Errorf("越界删除应为空操作: seq=%v mult=%v", newSeq, newMult)
	}
}

// TestMovePosition 搬移位置时倍率随之搬移（不重置）
func TestMovePosition(t *testing.T) {
	seq := []int{10, 20, 30, 40}
	mult := []float64{0.5, 1.5, 2.0, 3.0}

	newSeq, newMult := MovePosition(seq, mult, 0, 2)

	if !reflect.DeepEqual(newSeq, []int{20, 30, 10, 40}) {
		t.Errorf("序列 = %v", newSeq)
	}
	if !reflect.DeepEqual(newMult, []float64{1.5, 2.0, 0.5, 3.0}) {
		t.Errorf("倍率 = %v", newMult)
	}

	// 向前搬移
	newSeq, newMult = MovePosition(seq, mult, 3, 0)
	if !reflect.DeepEqual(newSeq, []int{40, 10, 20, 30}) {
		t.Errorf("序列 = %v", newSeq)
	}
	if !reflect.DeepEqual(newMult, []float64{3.0, 0.5, 1.5, 2.0}) {
		t.Errorf("倍率 = %v", newMult)
	}

	// from == to 是空操作
	newSeq, _ = MovePosition(seq, mult, 2, 2)
	if !reflect.DeepEqual(newSeq, seq) {
		t.Errorf("from==to 应为空操作: %v", newSeq)
	}

	// 越界下标钳制
	newSeq, _ = MovePosition(seq, mult, -5, 99)
	if !reflect.DeepEqual(newSeq, []int{20, 30, 40, 10}) {
		t.Errorf("钳制搬移: %v", newSeq)
	}
}

// TestOps_LockstepInvariant 任意操作序列后两个数组长度始终一致
func TestOps_LockstepInvariant(t *testing.T) {
	seq := []int{0}
	var mult []float64

	seq, mult = InsertPositions(seq, mult, 1, 1, 2, 3)
	seq, mult = MovePosition(seq, mult, 0, 3)
	seq, mult = RemovePosition(seq, mult, 2)
	seq, mult = InsertPositions(seq, mult, 0, 9)

	if len(seq) != len(mult) {
		t.Errorf("锁步被破坏: seq=%d mult=%d", len(seq), len(mult))
	}
}
