package editor

import (
	"log"
	"sort"

	"github.com/decker502/spritestudio/pkg/timeline"
)

// 旧版动画设置迁移
//
// 旧版本的工具把每个动画的 fps 和倍率存在通用会话元数据的
// 两张扁平表里（animation_fps / animation_multipliers），
// 而不是动画自己的元数据记录。首次观察到这种编码时，
// 按当前的钳制规则转换成逐动画的 Meta 记录，然后把旧表从
// 会话里删除。迁移每个编辑器会话最多执行一次；
// 没有旧数据本身也视为"迁移已完成"，不再反复检查。

// migrateLegacySettingsLocked 执行一次旧版设置迁移
//
// 调用方必须已持有 s.mu。
func (s *State) migrateLegacySettingsLocked() {
	if s.migrated {
		return
	}
	s.migrated = true

	if s.session == nil {
		return
	}
	data := s.session.Data()
	if len(data.LegacyAnimationFPS) == 0 && len(data.LegacyAnimationMultipliers) == 0 {
		// 没有旧数据，迁移视为已完成
		return
	}

	names := make(map[string]bool)
	for name := range data.LegacyAnimationFPS {
		names[name] = true
	}
	for name := range data.LegacyAnimationMultipliers {
		names[name] = true
	}

	migratedCount := 0
	for name := range names {
		meta := s.meta[name]

		if fps, ok := data.LegacyAnimationFPS[name]; ok {
			meta.FPS = timeline.ClampFPS(fps)
		}

		if byIndex, ok := data.LegacyAnimationMultipliers[name]; ok && len(byIndex) > 0 {
			// 稀疏的位置表转成数组：先确定最大下标，缺口补默认值
			indices := make([]int, 0, len(byIndex))
			for idx := range byIndex {
				if idx >= 0 {
					indices = append(indices, idx)
				}
			}
			sort.Ints(indices)
			if len(indices) > 0 {
				mult := make([]float64, indices[len(indices)-1]+1)
				for i := range mult {
					mult[i] = timeline.DefaultMultiplier
				}
				for idx, v := range byIndex {
					if idx >= 0 {
						mult[idx] = timeline.ClampMultiplier(v)
					}
				}
				meta.Multipliers = mult
			}
		}

		s.meta[name] = meta
		migratedCount++
	}

	// 从会话里移除旧编码并持久化
	data.LegacyAnimationFPS = nil
	data.LegacyAnimationMultipliers = nil
	if err := s.session.Save(); err != nil {
		log.Printf("[EditorState] Warning: failed to save session after migration: %v", err)
	}

	log.Printf("[EditorState] migrated legacy animation settings for %d animation(s)", migratedCount)
	s.invalidateLocked()
}

// MigrateLegacySettings 手动触发旧版设置迁移
//
// LoadDocument 已经自动调用；会话内重复调用是空操作。
func (s *State) MigrateLegacySettings() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.migrateLegacySettingsLocked()
	s.reconcileMetaLocked()
}
