package timeline

// BuildSequence 解析动画的播放序列
//
// animName 命中一个非空动画时，直接返回该动画的序列
// （共享底层数组，调用方必须只读）。其余情况（名字不存在、
// 动画序列为空、名字为空）返回覆盖全部帧的恒等序列
// [0 .. len(Frames)-1]，即"全部帧"回退视图。
func BuildSequence(ds *Dataset, animName string) []int {
	if ds == nil {
		return nil
	}
	if seq, ok := ds.Animations[animName]; ok && len(seq) > 0 {
		return seq
	}
	all := make([]int, len(ds.Frames))
	for i := range all {
		all[i] = i
	}
	return all
}

// PickInitialAnimation 选择初始播放的动画
//
// 优先级（编辑器加载精灵且无显式选择时的行为由此决定，
// 顺序不可调整）：
//  1. 调用方显式请求的名字
//  2. 调用方显式配置的自动播放名字
//  3. 数据集声明的自动播放动画
//  4. 声明顺序中的第一个动画
//  5. 没有任何动画时返回 ""
//
// 名字不做存在性校验：不存在的名字由 BuildSequence
// 降级到"全部帧"视图，不视为错误。
func PickInitialAnimation(ds *Dataset, requestedName, autoplayName string) string {
	if requestedName != "" {
		return requestedName
	}
	if autoplayName != "" {
		return autoplayName
	}
	if ds == nil {
		return ""
	}
	if ds.Autoplay != "" {
		return ds.Autoplay
	}
	if len(ds.Order) > 0 {
		return ds.Order[0]
	}
	return ""
}
