// Package editor 实现编辑器状态存储层
//
// 持有帧列表、动画集合、动画元数据和自动播放目标，
// 对外提供原子的整体替换接口和增量的时间线编辑操作，
// 并负责元数据的对账（规范化 + 孤儿清理）和旧版设置迁移。
// 所有访问经由一把互斥锁串行化：编辑操作和播放读取
// 必须表现为同一个逻辑执行体。
package editor

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SessionData 编辑器会话的持久化数据
//
// LegacyAnimationFPS / LegacyAnimationMultipliers 是旧版本工具
// 把动画播放设置存放在通用元数据里的扁平编码，
// 迁移完成后这两个字段会被清除（见 State.migrateLegacySettings）。
type SessionData struct {
	// LastDocument 上次打开的文档路径
	LastDocument string `yaml:"lastDocument,omitempty"`

	// SpeedScale 上次使用的速度倍率
	SpeedScale float64 `yaml:"speedScale,omitempty"`

	// LegacyAnimationFPS 旧版编码：动画名 -> fps
	LegacyAnimationFPS map[string]float64 `yaml:"animation_fps,omitempty"`

	// LegacyAnimationMultipliers 旧版编码：动画名 -> (时间线位置 -> 倍率)
	LegacyAnimationMultipliers map[string]map[int]float64 `yaml:"animation_multipliers,omitempty"`
}

// SessionManager 会话管理器
// 负责编辑器会话数据的加载、保存和内存管理
type SessionManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	data         *SessionData   // 当前会话数据
}

// 存储路径常量
const (
	sessionObject   = "editor"
	sessionProperty = "session"
)

// NewSessionManager 创建会话管理器
//
// gdataManager 可为 nil（降级模式，仅内存数据，不持久化）。
// 加载失败不是致命错误，使用空会话继续。
func NewSessionManager(gdataManager *gdata.Manager) *SessionManager {
	sm := &SessionManager{
		gdataManager: gdataManager,
		data:         &SessionData{},
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SessionManager] Warning: Failed to load session: %v (using empty session)", err)
	}
	return sm
}

// Load 从 gdata 加载会话数据
func (sm *SessionManager) Load() error {
	if sm.gdataManager == nil {
		sm.data = &SessionData{}
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(sessionObject, sessionProperty) {
		sm.data = &SessionData{}
		return nil
	}

	raw, err := sm.gdataManager.LoadObjectProp(sessionObject, sessionProperty)
	if err != nil {
		sm.data = &SessionData{}
		return fmt.Errorf("failed to load session: %w", err)
	}

	var loaded SessionData
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		sm.data = &SessionData{}
		return fmt.Errorf("failed to unmarshal session: %w", err)
	}

	sm.data = &loaded
	log.Printf("[SessionManager] Session loaded successfully")
	return nil
}

// Save 保存会话数据到 gdata
//
// 降级模式（gdataManager 为 nil）下不报错，直接返回。
func (sm *SessionManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	raw, err := yaml.Marshal(sm.data)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(sessionObject, sessionProperty, raw); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Data 获取当前会话数据
//
// 注意：修改后需调用 Save() 持久化。
func (sm *SessionManager) Data() *SessionData {
	return sm.data
}
