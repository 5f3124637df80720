// Package playback 实现播放控制器状态机
//
// 控制器只协调"播放意图"和"游标位置"，自己不计时：
// 帧的推进节奏由渲染层按 CurrentFrameDuration 调度，
// 推进结果通过 HandleFrameChange / HandleAnimationEnd 通知回来。
// 所有方法必须在同一个逻辑执行体内调用（与编辑操作串行），
// 本包自身不加锁。
package playback

import (
	"log"

	"github.com/decker502/spritestudio/pkg/timeline"
)

// Direction 播放方向
type Direction int

const (
	// DirectionForward 正向播放
	DirectionForward Direction = iota
	// DirectionReverse 反向播放
	DirectionReverse
)

// State 播放状态
type State int

const (
	// StateStopped 停止
	StateStopped State = iota
	// StatePlaying 播放中
	StatePlaying
	// StatePaused 暂停（保留方向和游标）
	StatePaused
)

// DatasetProvider 为控制器提供运行时数据集
//
// Revision 在帧列表或动画集合被整体替换时递增，
// 控制器据此在下一次操作前重置游标（结构性替换后
// 旧游标不再有意义）。增量的时间线编辑不递增 Revision。
type DatasetProvider interface {
	Dataset() *timeline.Dataset
	Revision() uint64
}

// PlayOptions 播放命令的可选参数
type PlayOptions struct {
	// FromFrame 指定起播帧索引（钳制到序列范围内）
	// nil 表示按恢复/重播规则决定起点。
	FromFrame *int
}

// SeekOptions 定位命令的可选参数
type SeekOptions struct {
	// Cursor 显式时间线位置，优先于按帧索引查找
	Cursor *int

	// AnimationName 在哪个动画的序列里定位，"" 表示当前激活动画
	AnimationName string

	// SequenceOverride 直接给定序列（跳过 BuildSequence）
	SequenceOverride []int
}

// Player 播放控制器
//
// 维护两个游标：
//   - frameCursor：当前显示的绝对帧索引
//   - timelineCursor：该帧在激活序列中的位置，-1 表示无时间线上下文
//
// "ended" 标志记录最近一次自然播完的动画（单标志，非按动画记录），
// 下一次 play 命令据此决定从头重播还是从当前位置续播。
type Player struct {
	provider DatasetProvider

	state     State
	direction Direction

	activeAnim     string
	frameCursor    int
	timelineCursor int
	speedScale     float64

	endedAnim string
	hasEnded  bool

	seenRevision uint64
}

// NewPlayer 创建播放控制器
func NewPlayer(provider DatasetProvider) *Player {
	p := &Player{
		provider:       provider,
		timelineCursor: -1,
		speedScale:     1.0,
	}
	if provider != nil {
		p.seenRevision = provider.Revision()
	}
	return p
}

// ==================================================================
// 查询接口（暴露给 UI 层）
// ==================================================================

// IsPlaying 是否处于播放状态
func (p *Player) IsPlaying() bool { return p.state == StatePlaying }

// State 当前播放状态
func (p *Player) State() State { return p.state }

// Direction 当前播放方向
func (p *Player) Direction() Direction { return p.direction }

// ActiveAnimation 当前激活的动画名，"" 表示未激活任何动画
func (p *Player) ActiveAnimation() string { return p.activeAnim }

// FrameCursor 当前显示的绝对帧索引
func (p *Player) FrameCursor() int { return p.frameCursor }

// TimelineCursor 当前时间线位置，-1 表示无时间线上下文
func (p *Player) TimelineCursor() int { return p.timelineCursor }

// SpeedScale 当前速度倍率
func (p *Player) SpeedScale() float64 { return p.speedScale }

// LastEnded 最近一次自然播完的动画名
func (p *Player) LastEnded() (string, bool) { return p.endedAnim, p.hasEnded }

// CurrentFrameDuration 当前帧的有效显示时长（毫秒）
//
// 渲染层每次推进前查询此值安排下一个 tick。
func (p *Player) CurrentFrameDuration() float64 {
	ds := p.dataset()
	var frame *timeline.Frame
	if ds != nil && p.frameCursor >= 0 && p.frameCursor < len(ds.Frames) {
		frame = &ds.Frames[p.frameCursor]
	}
	return timeline.ComputeFrameDuration(frame, p.activeAnim, p.timelineCursor, ds, p.speedScale)
}

// ==================================================================
// 播放命令
// ==================================================================

// PlayForward 正向播放
//
// name 为空时回退到当前激活动画；仍为空时按初始动画优先级选取。
func (p *Player) PlayForward(name string) {
	p.PlayForwardWithOptions(name, PlayOptions{})
}

// PlayForwardWithOptions 正向播放（带起播帧等选项）
func (p *Player) PlayForwardWithOptions(name string, opts PlayOptions) {
	p.play(name, opts, DirectionForward)
}

// PlayReverse 反向播放
func (p *Player) PlayReverse(name string) {
	p.PlayReverseWithOptions(name, PlayOptions{})
}

// PlayReverseWithOptions 反向播放（带起播帧等选项）
func (p *Player) PlayReverseWithOptions(name string, opts PlayOptions) {
	p.play(name, opts, DirectionReverse)
}

// play 播放命令的统一入口
//
// 起点判定顺序：
//  1. FromFrame 给定：先定位到该帧再播放
//  2. 未在播放，且（非循环动画的游标停在对应方向的末端，
//     或存在"已播完"标志）：从序列起点（正向）/终点（反向）重播
//  3. 其余情况：从当前游标续播
func (p *Player) play(name string, opts PlayOptions, dir Direction) {
	p.syncDataset()
	ds := p.dataset()
	if ds == nil || len(ds.Frames) == 0 {
		// 没有帧时所有状态转换都是空操作
		return
	}

	target := name
	if target == "" {
		target = p.activeAnim
	}
	if target == "" {
		target = timeline.PickInitialAnimation(ds, "", "")
	}

	seq := timeline.BuildSequence(ds, target)
	if len(seq) == 0 {
		return
	}

	// 切换动画时先把当前帧映射到新序列的位置
	if target != p.activeAnim {
		p.activeAnim = target
		p.seekInSequence(p.frameCursor, seq, nil)
	}

	switch {
	case opts.FromFrame != nil:
		p.seekInSequence(*opts.FromFrame, seq, nil)

	case p.state != StatePlaying && p.shouldRestart(ds, target, seq, dir):
		if dir == DirectionForward {
			p.timelineCursor = 0
		} else {
			p.timelineCursor = len(seq) - 1
		}
		p.frameCursor = seq[p.timelineCursor]

	default:
		// 从当前游标续播；游标尚无上下文时落到对应方向的起点
		if p.timelineCursor < 0 || p.timelineCursor >= len(seq) {
			if dir == DirectionForward {
				p.timelineCursor = 0
			} else {
				p.timelineCursor = len(seq) - 1
			}
		}
		p.frameCursor = seq[p.timelineCursor]
	}

	p.hasEnded = false
	p.endedAnim = ""
	p.direction = dir
	p.state = StatePlaying
}

// shouldRestart 判断是否需要从头重播而非续播
func (p *Player) shouldRestart(ds *timeline.Dataset, target string, seq []int, dir Direction) bool {
	if p.hasEnded {
		return true
	}
	loop := true
	if meta, ok := ds.Meta[target]; ok {
		loop = meta.LoopEnabled()
	}
	if loop {
		return false
	}
	if dir == DirectionForward {
		return p.timelineCursor >= len(seq)-1
	}
	return p.timelineCursor == 0
}

// Pause 暂停播放，保留游标和方向
func (p *Player) Pause() {
	p.syncDataset()
	if p.state == StatePlaying {
		p.state = StatePaused
	}
}

// Resume 从暂停恢复，沿用原动画和方向
func (p *Player) Resume() {
	p.syncDataset()
	if p.state == StatePaused {
		p.state = StatePlaying
	}
}

// Stop 停止播放
//
// 帧游标归零，时间线游标回到序列首位（序列为空时为 -1）。
func (p *Player) Stop() {
	p.syncDataset()
	p.state = StateStopped
	p.hasEnded = false
	p.endedAnim = ""
	p.frameCursor = 0
	seq := timeline.BuildSequence(p.dataset(), p.activeAnim)
	if len(seq) > 0 {
		p.timelineCursor = 0
	} else {
		p.timelineCursor = -1
	}
}

// SeekFrame 定位到指定帧
func (p *Player) SeekFrame(frameIndex int) {
	p.SeekFrameWithOptions(frameIndex, SeekOptions{})
}

// SeekFrameWithOptions 定位到指定帧（带选项）
//
// 给定 Cursor 时直接使用（钳制到序列范围）；否则在序列中查找
// frameIndex 的首次出现，找不到时把 frameIndex 本身钳制成时间线
// 位置。两个游标始终一致更新：frameCursor 取序列在该位置的值。
// 序列为空时 frameCursor 取钳制后的原始索引，timelineCursor 为 -1。
func (p *Player) SeekFrameWithOptions(frameIndex int, opts SeekOptions) {
	p.syncDataset()
	ds := p.dataset()

	name := opts.AnimationName
	if name == "" {
		name = p.activeAnim
	}
	seq := opts.SequenceOverride
	if seq == nil {
		seq = timeline.BuildSequence(ds, name)
	}

	p.seekInSequence(frameIndex, seq, opts.Cursor)
}

// seekInSequence 在给定序列里完成游标定位
func (p *Player) seekInSequence(frameIndex int, seq []int, cursor *int) {
	if len(seq) == 0 {
		frameCount := 0
		if ds := p.dataset(); ds != nil {
			frameCount = len(ds.Frames)
		}
		p.frameCursor = clampIndex(frameIndex, frameCount)
		p.timelineCursor = -1
		return
	}

	if cursor != nil {
		c := clampIndex(*cursor, len(seq))
		p.timelineCursor = c
		p.frameCursor = seq[c]
		return
	}

	for i, f := range seq {
		if f == frameIndex {
			p.timelineCursor = i
			p.frameCursor = f
			return
		}
	}

	// 帧不在序列中：把索引本身钳制成时间线位置
	c := clampIndex(frameIndex, len(seq))
	p.timelineCursor = c
	p.frameCursor = seq[c]
}

// SetSpeedScale 设置全局速度倍率
//
// 播放中调整速度时重新下发当前播放命令（状态仍是 Playing，
// 不会触发重播分支），位置保持不变，渲染节奏随新倍率更新。
func (p *Player) SetSpeedScale(s float64) {
	p.speedScale = timeline.ClampSpeedScale(s)
	if p.state == StatePlaying {
		p.play(p.activeAnim, PlayOptions{}, p.direction)
	}
}

// ==================================================================
// 激活与自动播放
// ==================================================================

// SetActiveAnimation 激活一个动画（不触发自动播放）
//
// 游标回到该动画序列的首位。供 UI 在时间线面板中切换动画使用。
func (p *Player) SetActiveAnimation(name string) {
	p.syncDataset()
	p.activeAnim = name
	seq := timeline.BuildSequence(p.dataset(), name)
	if len(seq) > 0 {
		p.timelineCursor = 0
		p.frameCursor = seq[0]
	} else {
		p.timelineCursor = -1
		p.frameCursor = 0
	}
}

// Activate 按初始动画优先级激活，并在命中自动播放目标时起播
//
// 自动播放只作为激活动作的反应触发一次，
// 播放状态因其他原因变化时不会重新触发。
func (p *Player) Activate(requestedName string) {
	p.syncDataset()
	ds := p.dataset()
	name := timeline.PickInitialAnimation(ds, requestedName, "")
	p.SetActiveAnimation(name)
	if ds == nil || name == "" {
		return
	}
	if name == ds.Autoplay && len(ds.Animations[name]) > 0 {
		log.Printf("[Player] autoplay: %s", name)
		p.PlayForward(name)
	}
}

// ==================================================================
// 渲染层通知
// ==================================================================

// HandleFrameChange 渲染层每推进一帧调用一次，保持游标与屏幕同步
func (p *Player) HandleFrameChange(frameIndex, cursor int) {
	p.syncDataset()
	ds := p.dataset()
	frameCount := 0
	if ds != nil {
		frameCount = len(ds.Frames)
	}
	p.frameCursor = clampIndex(frameIndex, frameCount)
	seq := timeline.BuildSequence(ds, p.activeAnim)
	if len(seq) > 0 {
		p.timelineCursor = clampIndex(cursor, len(seq))
	} else {
		p.timelineCursor = -1
	}
}

// HandleAnimationEnd 渲染层在非循环序列自然播完时调用
//
// Playing -> Stopped，记录播完的动画，游标吸附到播放方向的末端
// （正向为最后一个位置，反向为第一个位置）。
func (p *Player) HandleAnimationEnd(name string) {
	p.syncDataset()
	if p.state == StatePlaying {
		p.state = StateStopped
	}
	p.hasEnded = true
	p.endedAnim = name

	seq := timeline.BuildSequence(p.dataset(), p.activeAnim)
	if len(seq) == 0 {
		p.timelineCursor = -1
		return
	}
	if p.direction == DirectionForward {
		p.timelineCursor = len(seq) - 1
	} else {
		p.timelineCursor = 0
	}
	p.frameCursor = seq[p.timelineCursor]
}

// ==================================================================
// 内部工具
// ==================================================================

func (p *Player) dataset() *timeline.Dataset {
	if p.provider == nil {
		return nil
	}
	return p.provider.Dataset()
}

// syncDataset 在每个操作前校验数据集
//
// 结构性替换（Revision 变化）后重置游标并停止播放；
// 激活序列变空（帧被清空）时清除游标。增量编辑只做钳制。
func (p *Player) syncDataset() {
	if p.provider == nil {
		return
	}
	ds := p.provider.Dataset()

	if rev := p.provider.Revision(); rev != p.seenRevision {
		p.seenRevision = rev
		p.state = StateStopped
		p.hasEnded = false
		p.endedAnim = ""
		p.frameCursor = 0
		seq := timeline.BuildSequence(ds, p.activeAnim)
		if len(seq) > 0 {
			p.timelineCursor = 0
		} else {
			p.timelineCursor = -1
		}
		return
	}

	if ds == nil || len(ds.Frames) == 0 {
		p.frameCursor = 0
		p.timelineCursor = -1
		return
	}

	// 增量编辑可能缩短序列，游标只做钳制
	p.frameCursor = clampIndex(p.frameCursor, len(ds.Frames))
	seq := timeline.BuildSequence(ds, p.activeAnim)
	if len(seq) == 0 {
		p.timelineCursor = -1
	} else if p.timelineCursor >= len(seq) {
		p.timelineCursor = len(seq) - 1
	}
}

// clampIndex 把索引钳制到 [0, length-1]，length 为 0 时返回 0
func clampIndex(i, length int) int {
	if i < 0 {
		return 0
	}
	if length > 0 && i > length-1 {
		return length - 1
	}
	if length == 0 {
		return 0
	}
	return i
}
