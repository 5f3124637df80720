package editor

import (
	"log"

	"github.com/decker502/spritestudio/pkg/timeline"
)

// 时间线编辑操作
//
// 所有操作针对具名动画的 (序列, 倍率数组) 二元组，
// 经由 pkg/timeline 的锁步原语执行，保证两者长度始终一致。
// 这些操作属于增量编辑：不递增 Revision，播放游标只被钳制而不重置。

// InsertFrames 在指定位置插入若干帧索引
//
// 目标动画不存在时创建之（追加到声明顺序末尾）。
// 新位置的倍率为默认值 1.0。
func (s *State) InsertFrames(animation string, pos int, frames ...int) {
	if len(frames) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureAnimationLocked(animation)
	seq := s.animations[animation]
	meta := s.meta[animation]

	newSeq, newMult := timeline.InsertPositions(seq, meta.Multipliers, pos, frames...)
	s.animations[animation] = newSeq
	meta.Multipliers = newMult
	s.meta[animation] = meta
	s.invalidateLocked()
}

// AppendFrames 在序列末尾追加若干帧索引
func (s *State) AppendFrames(animation string, frames ...int) {
	s.InsertFrames(animation, len(s.Animations()[animation]), frames...)
}

// RemoveAt 删除一个时间线位置
//
// 倍率数组丢弃同一位置。选中位置重新钳制到 [0, 新长度-1]，
// 序列变空时清除选中。
func (s *State) RemoveAt(animation string, pos int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.animations[animation]
	if !ok {
		return
	}
	meta := s.meta[animation]

	newSeq, newMult := timeline.RemovePosition(seq, meta.Multipliers, pos)
	s.animations[animation] = newSeq
	meta.Multipliers = newMult
	s.meta[animation] = meta

	// 选中位置重新钳制
	if s.selection != nil && s.selection.Animation == animation {
		if len(newSeq) == 0 {
			s.selection = nil
		} else if s.selection.Position > len(newSeq)-1 {
			s.selection.Position = len(newSeq) - 1
		}
	}
	s.invalidateLocked()
}

// Move 把一个时间线位置搬到另一个下标，倍率随之搬移
func (s *State) Move(animation string, from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.animations[animation]
	if !ok {
		return
	}
	meta := s.meta[animation]

	newSeq, newMult := timeline.MovePosition(seq, meta.Multipliers, from, to)
	s.animations[animation] = newSeq
	meta.Multipliers = newMult
	s.meta[animation] = meta
	s.invalidateLocked()
}

// CopyPositions 复制若干时间线位置上的帧索引值
//
// 快照只包含帧索引，不包含倍率（粘贴时使用全新的默认倍率）。
// 越界位置被忽略。
func (s *State) CopyPositions(animation string, positions []int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.animations[animation]
	snapshot := make([]int, 0, len(positions))
	for _, pos := range positions {
		if pos >= 0 && pos < len(seq) {
			snapshot = append(snapshot, seq[pos])
		}
	}
	return snapshot
}

// Paste 把复制的帧索引快照插入到目标位置
//
// 新位置使用默认倍率 1.0（复制不携带倍率）。
func (s *State) Paste(animation string, pos int, snapshot []int) {
	s.InsertFrames(animation, pos, snapshot...)
}

// RenameAnimation 原子地重命名一个动画
//
// 序列、元数据、声明顺序、自动播放目标在一次持锁期间同时换键，
// 不存在"一边是新名字一边还是旧名字"的可观察中间态。
// 新旧名字相同、旧名字不存在、或新名字已被占用时不做任何事
// （名字冲突的处理是调用方的职责）。返回是否执行了重命名。
func (s *State) RenameAnimation(oldName, newName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if oldName == newName || newName == "" {
		return false
	}
	seq, ok := s.animations[oldName]
	if !ok {
		return false
	}
	if _, taken := s.animations[newName]; taken {
		return false
	}

	delete(s.animations, oldName)
	s.animations[newName] = seq

	if meta, ok := s.meta[oldName]; ok {
		delete(s.meta, oldName)
		s.meta[newName] = meta
	}

	for i, name := range s.order {
		if name == oldName {
			s.order[i] = newName
			break
		}
	}

	if s.autoplay == oldName {
		s.autoplay = newName
	}
	if s.selection != nil && s.selection.Animation == oldName {
		s.selection.Animation = newName
	}

	s.invalidateLocked()
	log.Printf("[EditorState] renamed animation '%s' -> '%s'", oldName, newName)
	return true
}

// DeleteAnimation 删除一个动画
//
// 对应的元数据一并删除；若该动画是自动播放目标，目标被清除。
func (s *State) DeleteAnimation(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.animations[name]; !ok {
		return
	}
	delete(s.animations, name)
	delete(s.meta, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.autoplay == name {
		s.autoplay = ""
	}
	if s.selection != nil && s.selection.Animation == name {
		s.selection = nil
	}
	s.invalidateLocked()
}

// SetAnimationMeta 更新单个动画的元数据（写前规范化）
func (s *State) SetAnimationMeta(name string, meta timeline.Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.animations[name]; !ok {
		return
	}
	s.meta[name] = timeline.NormalizeMeta(meta, len(s.animations[name]))
	s.invalidateLocked()
}

// ensureAnimationLocked 目标动画不存在时创建空序列并登记声明顺序
func (s *State) ensureAnimationLocked(name string) {
	if _, ok := s.animations[name]; ok {
		return
	}
	s.animations[name] = nil
	s.order = append(s.order, name)
	if _, ok := s.meta[name]; !ok {
		s.meta[name] = timeline.Meta{FPS: timeline.DefaultFPS}
	}
}

// ReconcileMeta 元数据对账
//
// 孤儿元数据（没有对应动画）删除；缺元数据的动画补默认记录；
// 每条记录按其序列长度规范化。只有内容真正变化时才写回
// （MetaEquals 抑制冗余写），避免反应式绑定层的更新死循环。
// 返回是否发生了修改。
func (s *State) ReconcileMeta() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconcileMetaLocked()
}

func (s *State) reconcileMetaLocked() bool {
	changed := false

	for name := range s.meta {
		if _, ok := s.animations[name]; !ok {
			delete(s.meta, name)
			changed = true
		}
	}

	for name, seq := range s.animations {
		old, ok := s.meta[name]
		if !ok {
			s.meta[name] = timeline.NormalizeMeta(timeline.Meta{FPS: timeline.DefaultFPS}, len(seq))
			changed = true
			continue
		}
		normalized := timeline.NormalizeMeta(old, len(seq))
		if !timeline.MetaEquals(old, normalized) {
			s.meta[name] = normalized
			changed = true
		}
	}

	if changed {
		s.invalidateLocked()
	}
	return changed
}
