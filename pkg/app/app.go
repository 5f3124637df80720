// Package app 提供预览应用的核心包装器
//
// 预览窗口是播放引擎的"渲染协作方"：引擎不计时，
// 本包在游戏循环里按 CurrentFrameDuration 累积时间、
// 推进时间线游标，并把每次推进（HandleFrameChange）和
// 非循环序列的自然播完（HandleAnimationEnd）通知回引擎。
package app

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/spritestudio/internal/sprite"
	"github.com/decker502/spritestudio/pkg/config"
	"github.com/decker502/spritestudio/pkg/editor"
	"github.com/decker502/spritestudio/pkg/embedded"
	"github.com/decker502/spritestudio/pkg/playback"
	"github.com/decker502/spritestudio/pkg/timeline"
)

// Config 定义应用启动配置
type Config struct {
	// ConfigPath 编辑器配置文件路径
	ConfigPath string
	// Document 精灵文档路径，覆盖配置文件中的设置；
	// 两者都为空时加载内置示例文档
	Document string
	// Verbose 启用详细日志输出
	Verbose bool
}

// App 预览应用，实现 ebiten.Game 接口
type App struct {
	state  *editor.State
	player *playback.Player

	sheet   *ebiten.Image
	docName string

	width  int
	height int

	// accumulator 当前帧的停留时间累积（秒）
	accumulator float64
}

// NewApp 创建并初始化预览应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 加载编辑器配置（失败时回退到默认值）
	editorCfg, err := config.LoadEditorConfig(cfg.ConfigPath)
	if err != nil {
		editorCfg = config.DefaultEditorConfig()
	}

	// 打开会话存储（失败进入降级模式，不持久化）
	var gdataManager *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: "spritestudio"}); err != nil {
		log.Printf("[App] Warning: failed to open session storage: %v (session disabled)", err)
	} else {
		gdataManager = m
	}
	session := editor.NewSessionManager(gdataManager)

	state := editor.NewState(session)

	// 解析文档来源：命令行 > 配置文件 > 内置示例
	docPath := cfg.Document
	if docPath == "" {
		docPath = editorCfg.Document
	}
	doc, sheet, err := loadDocument(docPath)
	if err != nil {
		return nil, err
	}
	state.LoadDocument(doc)

	session.Data().LastDocument = docPath
	if err := session.Save(); err != nil {
		log.Printf("[App] Warning: failed to save session: %v", err)
	}

	player := playback.NewPlayer(state)
	player.SetSpeedScale(editorCfg.SpeedScale)
	if editorCfg.AutoplayEnabled() {
		player.Activate("")
	} else {
		player.SetActiveAnimation(timeline.PickInitialAnimation(state.Dataset(), "", ""))
	}

	docName := doc.Name
	if docName == "" {
		docName = docPath
	}

	return &App{
		state:   state,
		player:  player,
		sheet:   sheet,
		docName: docName,
		width:   editorCfg.WindowWidth,
		height:  editorCfg.WindowHeight,
	}, nil
}

// loadDocument 加载精灵文档和它引用的图集
//
// path 为空时使用内置示例。图集缺失不是致命错误，
// 预览退化为绘制帧矩形轮廓。
func loadDocument(path string) (*sprite.Document, *ebiten.Image, error) {
	if path == "" {
		raw, err := embedded.ReadFile("assets/examples/walker.sprite.yaml")
		if err != nil {
			return nil, nil, fmt.Errorf("加载内置示例文档失败: %w", err)
		}
		doc, err := sprite.ParseDocument(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("解析内置示例文档失败: %w", err)
		}
		return doc, nil, nil
	}

	doc, err := sprite.LoadDocument(path)
	if err != nil {
		return nil, nil, fmt.Errorf("精灵文档加载失败: %w", err)
	}

	var sheet *ebiten.Image
	if doc.Image != "" {
		imgPath := filepath.Join(filepath.Dir(path), doc.Image)
		raw, err := os.ReadFile(imgPath)
		if err != nil {
			log.Printf("[App] Warning: sheet image '%s' not found, drawing frame outlines", imgPath)
		} else {
			img, _, err := image.Decode(bytes.NewReader(raw))
			if err != nil {
				log.Printf("[App] Warning: failed to decode sheet image '%s': %v", imgPath, err)
			} else {
				sheet = ebiten.NewImageFromImage(img)
			}
		}
	}
	return doc, sheet, nil
}

// Update 推进一个游戏 tick
//
// 先处理键盘输入，再按当前帧时长推进播放。
func (a *App) Update() error {
	a.handleInput()

	if !a.player.IsPlaying() {
		a.accumulator = 0
		return nil
	}

	a.accumulator += 1.0 / float64(ebiten.TPS())

	// 一个 tick 里可能跨过多帧（高倍速 + 短时长）
	for {
		dwell := a.player.CurrentFrameDuration() / 1000.0
		if a.accumulator < dwell {
			break
		}
		a.accumulator -= dwell
		if !a.advance() {
			a.accumulator = 0
			break
		}
	}
	return nil
}

// advance 推进一个时间线位置并通知引擎
//
// 返回 false 表示本次推进触发了动画结束（播放已停止）。
func (a *App) advance() bool {
	ds := a.state.Dataset()
	name := a.player.ActiveAnimation()
	seq := timeline.BuildSequence(ds, name)
	if len(seq) == 0 {
		return false
	}

	loop := true
	if meta, ok := ds.Meta[name]; ok {
		loop = meta.LoopEnabled()
	}

	cursor := a.player.TimelineCursor()
	if cursor < 0 {
		cursor = 0
	}

	next := cursor + 1
	if a.player.Direction() == playback.DirectionReverse {
		next = cursor - 1
	}

	if next < 0 || next >= len(seq) {
		if !loop {
			a.player.HandleAnimationEnd(name)
			return false
		}
		if next < 0 {
			next = len(seq) - 1
		} else {
			next = 0
		}
	}

	a.player.HandleFrameChange(seq[next], next)
	return true
}

// handleInput 键盘操作
//
// 空格 暂停/恢复，回车 正向播放，R 反向播放，S 停止，
// 左右箭头 单帧定位，Tab 切换动画，+/- 调整速度倍率。
func (a *App) handleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if a.player.IsPlaying() {
			a.player.Pause()
		} else {
			a.player.Resume()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		a.player.PlayForward("")
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		a.player.PlayReverse("")
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		a.player.Stop()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		a.cycleAnimation()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		a.step(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		a.step(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		a.player.SetSpeedScale(a.player.SpeedScale() * 2)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		a.player.SetSpeedScale(a.player.SpeedScale() / 2)
	}
}

// step 手动单步定位（暂停播放）
func (a *App) step(delta int) {
	a.player.Pause()
	ds := a.state.Dataset()
	seq := timeline.BuildSequence(ds, a.player.ActiveAnimation())
	if len(seq) == 0 {
		return
	}
	cursor := a.player.TimelineCursor() + delta
	a.player.SeekFrameWithOptions(0, playback.SeekOptions{Cursor: &cursor})
}

// cycleAnimation 按声明顺序切换到下一个动画
func (a *App) cycleAnimation() {
	ds := a.state.Dataset()
	if len(ds.Order) == 0 {
		return
	}
	current := a.player.ActiveAnimation()
	next := ds.Order[0]
	for i, name := range ds.Order {
		if name == current {
			next = ds.Order[(i+1)%len(ds.Order)]
			break
		}
	}
	a.player.SetActiveAnimation(next)
}

// Draw 绘制当前帧和状态信息
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 34, G: 34, B: 40, A: 255})

	ds := a.state.Dataset()
	cursor := a.player.FrameCursor()
	if cursor >= 0 && cursor < len(ds.Frames) {
		a.drawFrame(screen, ds.Frames[cursor].Rect)
	}

	stateName := "stopped"
	switch a.player.State() {
	case playback.StatePlaying:
		stateName = "playing"
	case playback.StatePaused:
		stateName = "paused"
	}
	dir := "forward"
	if a.player.Direction() == playback.DirectionReverse {
		dir = "reverse"
	}
	msg := fmt.Sprintf("%s | anim=%s [%s %s] frame=%d cursor=%d speed=%.2fx dwell=%.0fms",
		a.docName, a.player.ActiveAnimation(), stateName, dir,
		a.player.FrameCursor(), a.player.TimelineCursor(),
		a.player.SpeedScale(), a.player.CurrentFrameDuration())
	ebitenutil.DebugPrint(screen, msg)
}

// drawFrame 把帧矩形画到窗口中央
//
// 有图集时绘制对应子图，否则画矩形轮廓占位。
func (a *App) drawFrame(screen *ebiten.Image, r timeline.Rect) {
	const scale = 4.0
	cx := float64(a.width)/2 - r.W*scale/2
	cy := float64(a.height)/2 - r.H*scale/2

	if a.sheet != nil {
		sub := a.sheet.SubImage(image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))).(*ebiten.Image)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(cx, cy)
		screen.DrawImage(sub, op)
		return
	}

	vector.StrokeRect(screen, float32(cx), float32(cy),
		float32(r.W*scale), float32(r.H*scale), 2,
		color.RGBA{R: 120, G: 200, B: 120, A: 255}, false)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}
