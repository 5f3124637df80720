// inspect 打印一个精灵文档的时间线信息
//
// 对每个动画列出序列、循环标志、fps，以及每个时间线位置的
// 有效帧时长（可指定速度倍率观察缩放效果）。
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/decker502/spritestudio/internal/sprite"
	"github.com/decker502/spritestudio/pkg/editor"
	"github.com/decker502/spritestudio/pkg/timeline"
)

func main() {
	docPath := flag.String("doc", "", "精灵文档路径")
	animName := flag.String("anim", "", "只查看指定动画（为空时列出全部）")
	speed := flag.Float64("speed", 1.0, "速度倍率")
	flag.Parse()

	if *docPath == "" {
		fmt.Println("用法: go run cmd/inspect/main.go -doc <精灵文档路径> [-anim 动画名] [-speed 倍率]")
		return
	}

	doc, err := sprite.LoadDocument(*docPath)
	if err != nil {
		log.Fatalf("解析失败: %v", err)
	}

	state := editor.NewState(nil)
	state.LoadDocument(doc)
	ds := state.Dataset()

	fmt.Printf("精灵文档: %s\n", *docPath)
	fmt.Printf("帧数量: %d\n", len(ds.Frames))
	fmt.Printf("动画数量: %d\n", len(ds.Order))
	if ds.Autoplay != "" {
		fmt.Printf("自动播放: %s\n", ds.Autoplay)
	}
	fmt.Println()

	for _, name := range ds.Order {
		if *animName != "" && name != *animName {
			continue
		}
		printAnimation(ds, name, *speed)
	}
}

func printAnimation(ds *timeline.Dataset, name string, speed float64) {
	seq := timeline.BuildSequence(ds, name)
	meta := ds.Meta[name]

	fmt.Printf("动画 %q: fps=%.1f loop=%v 序列长度=%d\n",
		name, timeline.ClampFPS(meta.FPS), meta.LoopEnabled(), len(seq))

	total := 0.0
	for pos, frameIndex := range seq {
		var frame *timeline.Frame
		if frameIndex >= 0 && frameIndex < len(ds.Frames) {
			frame = &ds.Frames[frameIndex]
		}
		d := timeline.ComputeFrameDuration(frame, name, pos, ds, speed)
		total += d

		source := "fps×倍率"
		if frame == nil {
			source = "帧缺失，默认时长"
		} else if frame.Duration > 0 {
			source = "显式时长"
		}
		fmt.Printf("  位置 %2d -> 帧 %2d  %8.2fms  (%s)\n", pos, frameIndex, d, source)
	}
	fmt.Printf("  单次播放总时长: %.2fms (speed=%.2fx)\n\n", total, speed)
}
