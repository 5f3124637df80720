package editor

import (
	"reflect"
	"testing"

	"github.com/decker502/spritestudio/pkg/timeline"
)

// TestInsertFrames 插入帧索引，倍率数组锁步补默认值，不递增版本号
func TestInsertFrames(t *testing.T) {
	s := NewState(nil)
	s.LoadDocument(testDocument())
	before := s.Revision()

	s.InsertFrames("walk", 1, 3, 3)

	if got := s.Animations()["walk"]; !reflect.DeepEqual(got, []int{0, 3, 3, 1, 2}) {
		t.Errorf("walk 序列 = %v", got)
	}
	mult := s.Meta()["walk"].Multipliers
	if len(mult) != 5 {
		t.Fatalf("倍率长度 = %d, want 5", len(mult))
	}
	if mult[1] != timeline.DefaultMultiplier || mult[2] != timeline.DefaultMultiplier {
		t.Errorf("新位置倍率 = %v, want 默认值", mult[1:3])
	}
	if s.Revision() != before {
		t.Error("增量编辑不应递增 Revision")
	}
}

// TestInsertFrames_CreatesAnimation 目标动画不存在时创建并登记声明顺序
func TestInsertFrames_CreatesAnimation(t *testing.T) {
	s := NewState(nil)
	s.LoadDocument(testDocument())

	s.InsertFrames("run", 0, 1, 2)

	if got := s.Animations()["run"]; !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("run 序列 = %v", got)
	}
	order := s.AnimationOrder()
	if order[len(order)-1] != "run" {
		t.Errorf("新动画应追加到声明顺序末尾: %v", order)
	}
	if got := s.Meta()["run"].FPS; got != timeline.DefaultFPS {
		t.Errorf("新动画 FPS = %v, want %v", got, timeline.DefaultFPS)
	}
}

// TestAppendFrames 追加等价于在序列末尾插入
func TestAppendFrames(t *testing.T) {
	s := NewState(nil)
	s.LoadDocument(testDocument())

	s.AppendFrames("walk", 3)

	if got := s.Animations()["walk"]; !reflect.DeepEqual(got, []int{0, 1, 2, 3}) {
		t.Errorf("walk 序列 = %v", got)
	}
}

// TestRemoveAt 删除位置后倍率同步收缩，选中位置重新钳制
func TestRemoveAt(t *testing.T) {
	s := NewState(nil)
	s.LoadDocument(testDocument())
	s.SetAnimationMeta("walk", timeline.Meta{FPS: 5, Multipliers: []float64{1, 2, 3}})
	s.SetSelection("walk", 2)

	s.RemoveAt("walk", 1)

	if got := s.Animations()["walk"]; !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("walk 序列 = %v", got)
	}
	if got := s.Meta()["walk"].Multipliers; !reflect.DeepEqual(got, []float64{1, 3}) {
		t.Errorf("倍率 = %v, want [1 3]", got)
	}
	sel, ok := s.Selection()
	if !ok || sel.Position != 1 {
		t.Errorf("选中位置应钳制到 1, got (%+v, %v)", sel, ok)
	}

	// 删空后选中被清除
	s.RemoveAt("walk", 0)
	s.RemoveAt("walk", 0)
	if _, ok := s.Selection(); ok {
		t.Error("序列删空后选中应清除")
	}

	// 不存在的动画是空操作
	s.RemoveAt("no_such", 0)
}

// TestMove 搬移位置时倍率随之搬移
func TestMove(t *testing.T) {
	s := NewState(nil)
	s.LoadDocument(testDocument())
	s.SetAnimationMeta("walk", timeline.Meta{FPS: 5, Multipliers: []float64{1, 2, 3}})

	s.Move("walk", 0, 2)

	if got := s.Animations()["walk"]; !reflect.DeepEqual(got, []int{1, 2, 0}) {
		t.Errorf("walk 序列 = %v", got)
	}
	if got := s.Meta()["walk"].Multipliers; !reflect.DeepEqual(got, []float64{2, 3, 1}) {
		t.Errorf("倍率 = %v, want [2 3 1]", got)
	}
}

// TestCopyPaste 复制只携带帧索引，粘贴使用默认倍率
func TestCopyPaste(t *testing.T) {
	s := NewState(nil)
	s.LoadDocument(testDocument())
	s.SetAnimationMeta("walk", timeline.Meta{FPS: 5, Multipliers: []float64{3, 3, 3}})

	snapshot := s.CopyPositions("walk", []int{0, 2, 99})
	if !reflect.DeepEqual(snapshot, []int{0, 2}) {
		t.Errorf("快照 = %v, want [0 2]（越界位置被忽略）", snapshot)
	}

	s.Paste("idle", 1, snapshot)

	if got := s.Animations()["idle"]; !reflect.DeepEqual(got, []int{0, 0, 2}) {
		t.Errorf("idle 序列 = %v", got)
	}
	mult := s.Meta()["idle"].Multipliers
	if mult[1] != timeline.DefaultMultiplier || mult[2] != timeline.DefaultMultiplier {
		t.Errorf("粘贴位置倍率 = %v, want 默认值（复制不携带倍率）", mult)
	}
}

// TestRenameAnimation 序列、元数据、声明顺序、自动播放目标、选中一次性换键
func TestRenameAnimation(t *testing.T) {
	s := NewState(nil)
	s.LoadDocument(testDocument()) // autoplay: walk
	s.SetSelection("walk", 1)

	if !s.RenameAnimation("walk", "march") {
		t.Fatal("重命名应成功")
	}

	anims := s.Animations()
	if _, ok := anims["walk"]; ok {
		t.Error("旧名字应不存在")
	}
	if got := anims["march"]; !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("march 序列 = %v", got)
	}
	if _, ok := s.Meta()["march"]; !ok {
		t.Error("元数据应跟随新名字")
	}
	if got := s.Autoplay(); got != "march" {
		t.Errorf("自动播放目标 = %q, want march", got)
	}
	if got := s.AnimationOrder()[0]; got != "march" {
		t.Errorf("声明顺序首位 = %q, want march（位置不变）", got)
	}
	sel, _ := s.Selection()
	if sel.Animation != "march" || sel.Position != 1 {
		t.Errorf("选中 = %+v, want {march 1}", sel)
	}
}

// TestRenameAnimation_Rejections 冲突、缺失、同名、空名都是空操作
func TestRenameAnimation_Rejections(t *testing.T) {
	s := NewState(nil)
	s.LoadDocument(testDocument())

	if s.RenameAnimation("walk", "jump") {
		t.Error("新名字已被占用时应拒绝")
	}
	if s.RenameAnimation("no_such", "x") {
		t.Error("旧名字不存在时应拒绝")
	}
	if s.RenameAnimation("walk", "walk") {
		t.Error("同名重命名应为空操作")
	}
	if s.RenameAnimation("walk", "") {
		t.Error("空名字应拒绝")
	}
	// 状态不受影响
	if _, ok := s.Animations()["walk"]; !ok {
		t.Error("被拒绝的重命名不应改动状态")
	}
}

// TestDeleteAnimation 删除动画时清除元数据、声明顺序、自动播放目标和选中
func TestDeleteAnimation(t *testing.T) {
	s := NewState(nil)
	s.LoadDocument(testDocument()) // autoplay: walk
	s.SetSelection("walk", 0)

	s.DeleteAnimation("walk")

	if _, ok := s.Animations()["walk"]; ok {
		t.Error("动画应已删除")
	}
	if _, ok := s.Meta()["walk"]; ok {
		t.Error("元数据应一并删除")
	}
	if got := s.Autoplay(); got != "" {
		t.Errorf("自动播放目标应清除, got %q", got)
	}
	for _, name := range s.AnimationOrder() {
		if name == "walk" {
			t.Error("声明顺序中应不再出现")
		}
	}
	if _, ok := s.Selection(); ok {
		t.Error("选中应清除")
	}
}

// TestSetAnimationMeta 写前规范化，未知动画是空操作
func TestSetAnimationMeta(t *testing.T) {
	s := NewState(nil)
	s.LoadDocument(testDocument())

	s.SetAnimationMeta("walk", timeline.Meta{FPS: 999, Multipliers: []float64{0.01}})

	meta := s.Meta()["walk"]
	if meta.FPS != timeline.MaxFPS {
		t.Errorf("FPS = %v, want %v（写前钳制）", meta.FPS, timeline.MaxFPS)
	}
	if len(meta.Multipliers) != 3 {
		t.Errorf("倍率长度 = %d, want 3（补齐到序列长度）", len(meta.Multipliers))
	}
	if meta.Multipliers[0] != timeline.MinMultiplier {
		t.Errorf("倍率[0] = %v, want %v", meta.Multipliers[0], timeline.MinMultiplier)
	}

	s.SetAnimationMeta("no_such", timeline.Meta{FPS: 10})
	if _, ok := s.Meta()["no_such"]; ok {
		t.Error("未知动画不应产生元数据")
	}
}

// TestReconcileMeta 孤儿清理、默认补齐、收敛后不再报告变化
func TestReconcileMeta(t *testing.T) {
	s := NewState(nil)
	s.LoadDocument(testDocument())

	// 人为制造孤儿和缺失
	s.SetAnimationsMeta(map[string]timeline.Meta{
		"ghost": {FPS: 10},
		"walk":  {FPS: 5, Multipliers: []float64{1, 1, 1}},
	})

	meta := s.Meta()
	if _, ok := meta["ghost"]; ok {
		t.Error("孤儿元数据应被清除")
	}
	if _, ok := meta["jump"]; !ok {
		t.Error("缺失的元数据应补默认记录")
	}

	// 已收敛的状态再次对账不报告变化
	if s.ReconcileMeta() {
		t.Error("收敛后的对账应返回 false")
	}
}
