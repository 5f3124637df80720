// Package config 提供编辑器的 YAML 配置加载
package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/spritestudio/pkg/timeline"
)

// EditorConfig 编辑器启动配置
type EditorConfig struct {
	// WindowWidth / WindowHeight 预览窗口尺寸
	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`

	// Document 启动时打开的精灵文档路径，为空则使用内置示例
	Document string `yaml:"document,omitempty"`

	// Verbose 启用详细日志输出
	Verbose bool `yaml:"verbose"`

	// Autoplay 是否响应文档声明的自动播放动画
	// nil = 默认 true
	Autoplay *bool `yaml:"autoplay,omitempty"`

	// SpeedScale 初始速度倍率，加载时钳制到合法范围
	SpeedScale float64 `yaml:"speed_scale,omitempty"`
}

// DefaultEditorConfig 返回默认配置
func DefaultEditorConfig() *EditorConfig {
	return &EditorConfig{
		WindowWidth:  960,
		WindowHeight: 640,
		SpeedScale:   1.0,
	}
}

// AutoplayEnabled 解析 Autoplay 的三态语义（nil 视为 true）
func (c *EditorConfig) AutoplayEnabled() bool {
	return c.Autoplay == nil || *c.Autoplay
}

// LoadEditorConfig 从 YAML 文件加载编辑器配置
//
// 文件不存在或解析失败时记录警告并返回错误，
// 调用方应回退到 DefaultEditorConfig()。
func LoadEditorConfig(path string) (*EditorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[Config] Warning: Failed to load config file '%s': %v", path, err)
		return nil, err
	}

	cfg := DefaultEditorConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		log.Printf("[Config] Error: Failed to parse config file '%s': %v", path, err)
		return nil, fmt.Errorf("failed to parse editor config: %w", err)
	}

	// 钳制可疑数值
	if cfg.WindowWidth <= 0 {
		cfg.WindowWidth = DefaultEditorConfig().WindowWidth
	}
	if cfg.WindowHeight <= 0 {
		cfg.WindowHeight = DefaultEditorConfig().WindowHeight
	}
	cfg.SpeedScale = timeline.ClampSpeedScale(cfg.SpeedScale)

	log.Printf("[Config] Loaded editor config (document=%s, window=%dx%d)",
		cfg.Document, cfg.WindowWidth, cfg.WindowHeight)
	return cfg, nil
}
