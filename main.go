package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/spritestudio/pkg/app"
	"github.com/decker502/spritestudio/pkg/embedded"
)

func main() {
	configPath := flag.String("config", "spritestudio.yaml", "编辑器配置文件路径")
	docPath := flag.String("doc", "", "精灵文档路径（为空时使用内置示例）")
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	flag.Parse()

	// 初始化嵌入资源（必须在任何资源加载之前）
	embedded.Init(assetsFS)

	a, err := app.NewApp(app.Config{
		ConfigPath: *configPath,
		Document:   *docPath,
		Verbose:    *verbose,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(960, 640)
	ebiten.SetWindowTitle("精灵工作室 - 动画时间线预览")

	// Start the game loop
	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
