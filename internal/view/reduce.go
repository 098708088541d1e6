package view

import (
	"time"

	"TourWatch/internal/model"
)

// Classification 最新位置的安全分类
type Classification string

const (
	ClassificationSafe       Classification = "safe"
	ClassificationStale      Classification = "stale"
	ClassificationRestricted Classification = "restricted"
)

// LatestPosition 每个游客归并后的当前位置
type LatestPosition struct {
	Log            model.LocationLog
	Classification Classification
}

// LatestPositions 把一批乱序的位置记录归并为每个游客一条最新位置。
// 纯函数：只依赖输入和调用方传入的 now / staleAfter。
//
// 规则：
//  1. 按 tourist id 分组，取 recorded_at 最大的一条，时间戳相等时保留先遇到的；
//  2. 分类按严格优先级：in_restricted_zone 为 true 则 restricted（覆盖过期判定）；
//     否则 now - recorded_at 严格大于 staleAfter 则 stale；否则 safe。
//
// 缺坐标之类的脏记录原样透传，不做校验。
func LatestPositions(logs []model.LocationLog, now time.Time, staleAfter time.Duration) []LatestPosition {
	latest := make(map[int64]model.LocationLog, len(logs))
	order := make([]int64, 0, len(logs))

	for _, log := range logs {
		cur, ok := latest[log.TouristPublicID]
		if !ok {
			latest[log.TouristPublicID] = log
			order = append(order, log.TouristPublicID)
			continue
		}
		if log.RecordedAt.After(cur.RecordedAt) {
			latest[log.TouristPublicID] = log
		}
	}

	out := make([]LatestPosition, 0, len(order))
	for _, touristID := range order {
		log := latest[touristID]
		out = append(out, LatestPosition{
			Log:            log,
			Classification: Classify(log, now, staleAfter),
		})
	}

	return out
}

// Classify 对单条位置记录做安全分类，restricted > stale > safe
func Classify(log model.LocationLog, now time.Time, staleAfter time.Duration) Classification {
	if log.InRestrictedZone {
		return ClassificationRestricted
	}
	// 恰好等于阈值算 safe，严格大于才算 stale
	if now.Sub(log.RecordedAt) > staleAfter {
		return ClassificationStale
	}
	return ClassificationSafe
}
