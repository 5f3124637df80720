package editor

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/decker502/spritestudio/internal/sprite"
	"github.com/decker502/spritestudio/pkg/timeline"
)

// Selection 时间线面板中选中的位置
type Selection struct {
	// Animation 所属动画名
	Animation string
	// Position 时间线位置
	Position int
}

// FramePatch 帧的部分更新
// 为 nil 的字段保持原值不变
type FramePatch struct {
	X        *float64
	Y        *float64
	W        *float64
	H        *float64
	Duration *float64
}

// State 编辑器状态存储
//
// 帧、动画、元数据、自动播放目标的唯一权威来源。
// 整体替换接口（SetFrames / SetAnimations）递增 Revision，
// 播放控制器据此重置游标；增量编辑操作不递增。
type State struct {
	mu sync.Mutex

	frames     []sprite.Frame
	animations map[string][]int
	order      []string
	meta       map[string]timeline.Meta
	autoplay   string

	selection    *Selection
	revision     uint64
	nextFrameSeq int

	session  *SessionManager
	migrated bool

	// Dataset() 的缓存，任何修改后失效
	cachedDataset *timeline.Dataset
}

// NewState 创建编辑器状态存储
//
// session 可为 nil（无持久化会话，旧版设置迁移视为已完成）。
func NewState(session *SessionManager) *State {
	return &State{
		animations: make(map[string][]int),
		meta:       make(map[string]timeline.Meta),
		session:    session,
	}
}

// LoadDocument 用一个精灵文档整体替换编辑器状态
//
// 动画声明顺序取文档中的列表顺序。加载后立即对账元数据，
// 并执行一次旧版设置迁移（每个编辑器会话最多一次）。
func (s *State) LoadDocument(doc *sprite.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames = append([]sprite.Frame(nil), doc.Frames...)
	s.animations = make(map[string][]int, len(doc.Animations))
	s.order = make([]string, 0, len(doc.Animations))
	s.meta = make(map[string]timeline.Meta, len(doc.Animations))
	for _, anim := range doc.Animations {
		if _, exists := s.animations[anim.Name]; exists {
			log.Printf("[EditorState] Warning: duplicate animation name '%s' in document, last one wins", anim.Name)
		} else {
			s.order = append(s.order, anim.Name)
		}
		s.animations[anim.Name] = append([]int(nil), anim.Frames...)
		s.meta[anim.Name] = timeline.Meta{
			Loop:        anim.Loop,
			FPS:         anim.FPS,
			Multipliers: append([]float64(nil), anim.Multipliers...),
		}
	}
	s.autoplay = doc.Autoplay
	s.nextFrameSeq = len(doc.Frames)
	s.selection = nil
	s.bumpRevisionLocked()

	s.migrateLegacySettingsLocked()
	s.reconcileMetaLocked()
}

// ==================================================================
// 整体替换接口（§6 写操作，原子生效）
// ==================================================================

// SetFrames 整体替换帧列表
func (s *State) SetFrames(frames []sprite.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append([]sprite.Frame(nil), frames...)
	s.bumpRevisionLocked()
}

// AddFrame 追加一个帧矩形，返回生成的稳定 ID
func (s *State) AddFrame(rect timeline.Rect) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("frame_%d", s.nextFrameSeq)
	s.nextFrameSeq++
	s.frames = append(s.frames, sprite.Frame{
		ID: id,
		X:  rect.X,
		Y:  rect.Y,
		W:  rect.W,
		H:  rect.H,
	})
	s.invalidateLocked()
	return id
}

// UpdateFrame 按稳定 ID 部分更新一个帧
//
// 返回是否找到了对应的帧。
func (s *State) UpdateFrame(id string, patch FramePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.frames {
		if s.frames[i].ID != id {
			continue
		}
		if patch.X != nil {
			s.frames[i].X = *patch.X
		}
		if patch.Y != nil {
			s.frames[i].Y = *patch.Y
		}
		if patch.W != nil {
			s.frames[i].W = *patch.W
		}
		if patch.H != nil {
			s.frames[i].H = *patch.H
		}
		if patch.Duration != nil {
			s.frames[i].Duration = *patch.Duration
		}
		s.invalidateLocked()
		return true
	}
	return false
}

// SetAnimations 整体替换动画集合
//
// map 不携带顺序，整体替换后声明顺序退化为名字排序
// （增量编辑会维持既有顺序）。替换后立即对账元数据。
func (s *State) SetAnimations(animations map[string][]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.animations = make(map[string][]int, len(animations))
	s.order = make([]string, 0, len(animations))
	for name, seq := range animations {
		s.animations[name] = append([]int(nil), seq...)
		s.order = append(s.order, name)
	}
	sort.Strings(s.order)
	s.bumpRevisionLocked()
	s.reconcileMetaLocked()
}

// SetAnimationsMeta 整体替换元数据集合
//
// 替换后立即对账：孤儿条目被删除，缺失条目被补默认值。
func (s *State) SetAnimationsMeta(meta map[string]timeline.Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = make(map[string]timeline.Meta, len(meta))
	for name, m := range meta {
		s.meta[name] = m
	}
	s.invalidateLocked()
	s.reconcileMetaLocked()
}

// SetAutoplayAnimation 设置自动播放目标，"" 表示清除
func (s *State) SetAutoplayAnimation(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoplay = name
	s.invalidateLocked()
}

// ==================================================================
// 读取接口
// ==================================================================

// Frames 帧列表的副本（带稳定 ID）
func (s *State) Frames() []sprite.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sprite.Frame(nil), s.frames...)
}

// Animations 动画集合的副本
func (s *State) Animations() map[string][]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]int, len(s.animations))
	for name, seq := range s.animations {
		out[name] = append([]int(nil), seq...)
	}
	return out
}

// AnimationOrder 动画声明顺序的副本
func (s *State) AnimationOrder() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// Meta 元数据集合的副本
func (s *State) Meta() map[string]timeline.Meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]timeline.Meta, len(s.meta))
	for name, m := range s.meta {
		out[name] = m
	}
	return out
}

// Autoplay 当前自动播放目标
func (s *State) Autoplay() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoplay
}

// Selection 当前时间线选中位置
func (s *State) Selection() (Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection == nil {
		return Selection{}, false
	}
	return *s.selection, true
}

// SetSelection 设置时间线选中位置（钳制到该动画的序列范围）
func (s *State) SetSelection(animation string, position int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.animations[animation]
	if len(seq) == 0 {
		s.selection = nil
		return
	}
	if position < 0 {
		position = 0
	}
	if position > len(seq)-1 {
		position = len(seq) - 1
	}
	s.selection = &Selection{Animation: animation, Position: position}
}

// Dataset 构建运行时数据集（只读，帧不含稳定 ID）
//
// 实现 playback.DatasetProvider。结果在下一次修改前缓存复用。
func (s *State) Dataset() *timeline.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cachedDataset != nil {
		return s.cachedDataset
	}

	frames := make([]timeline.Frame, len(s.frames))
	for i, f := range s.frames {
		frames[i] = timeline.Frame{
			Rect:     timeline.Rect{X: f.X, Y: f.Y, W: f.W, H: f.H},
			Duration: f.Duration,
		}
	}
	animations := make(map[string][]int, len(s.animations))
	for name, seq := range s.animations {
		animations[name] = append([]int(nil), seq...)
	}
	meta := make(map[string]timeline.Meta, len(s.meta))
	for name, m := range s.meta {
		meta[name] = timeline.NormalizeMeta(m, len(s.animations[name]))
	}

	s.cachedDataset = &timeline.Dataset{
		Frames:     frames,
		Animations: animations,
		Order:      append([]string(nil), s.order...),
		Meta:       meta,
		Autoplay:   s.autoplay,
	}
	return s.cachedDataset
}

// Revision 结构性版本号（实现 playback.DatasetProvider）
func (s *State) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// ==================================================================
// 内部工具
// ==================================================================

// bumpRevisionLocked 结构性替换：递增版本号并失效缓存
func (s *State) bumpRevisionLocked() {
	s.revision++
	s.cachedDataset = nil
}

// invalidateLocked 增量修改：只失效缓存，不递增版本号
func (s *State) invalidateLocked() {
	s.cachedDataset = nil
}
