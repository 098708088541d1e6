package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TourWatch/internal/model"
)

const staleAfter = 6 * time.Hour

func makeLog(touristID int64, recordedAt time.Time, restricted bool) model.LocationLog {
	return model.LocationLog{
		TouristPublicID:  touristID,
		Latitude:         27.33,
		Longitude:        88.61,
		InRestrictedZone: restricted,
		RecordedAt:       recordedAt,
	}
}

func TestLatestPositionsOnePerTourist(t *testing.T) {
	now := time.Now()

	logs := []model.LocationLog{
		makeLog(1, now.Add(-3*time.Hour), false),
		makeLog(2, now.Add(-1*time.Hour), false),
		makeLog(1, now.Add(-1*time.Hour), false),
		makeLog(3, now.Add(-5*time.Hour), false),
		makeLog(2, now.Add(-4*time.Hour), false),
		makeLog(1, now.Add(-2*time.Hour), false),
	}

	out := LatestPositions(logs, now, staleAfter)
	require.Len(t, out, 3)

	byTourist := make(map[int64]LatestPosition)
	for _, p := range out {
		_, dup := byTourist[p.Log.TouristPublicID]
		require.False(t, dup, "tourist %d appears twice", p.Log.TouristPublicID)
		byTourist[p.Log.TouristPublicID] = p
	}

	// 每个游客保留的必须是该游客输入中时间戳最大的一条
	for _, log := range logs {
		kept := byTourist[log.TouristPublicID]
		assert.False(t, kept.Log.RecordedAt.Before(log.RecordedAt))
	}
}

func TestLatestPositionsEmptyInput(t *testing.T) {
	out := LatestPositions(nil, time.Now(), staleAfter)
	assert.Empty(t, out)
}

func TestClassifyRestrictedDominatesStaleness(t *testing.T) {
	now := time.Now()

	// 限制区域标记永远压过过期判定，哪怕记录已经很旧
	old := makeLog(1, now.Add(-48*time.Hour), true)
	assert.Equal(t, ClassificationRestricted, Classify(old, now, staleAfter))

	fresh := makeLog(1, now.Add(-time.Minute), true)
	assert.Equal(t, ClassificationRestricted, Classify(fresh, now, staleAfter))
}

func TestClassifyStaleBoundaryIsStrict(t *testing.T) {
	now := time.Now()

	// 恰好 6 小时算 safe，严格大于才算 stale
	exact := makeLog(1, now.Add(-staleAfter), false)
	assert.Equal(t, ClassificationSafe, Classify(exact, now, staleAfter))

	over := makeLog(1, now.Add(-staleAfter-time.Second), false)
	assert.Equal(t, ClassificationStale, Classify(over, now, staleAfter))

	under := makeLog(1, now.Add(-staleAfter+time.Second), false)
	assert.Equal(t, ClassificationSafe, Classify(under, now, staleAfter))
}

func TestRestrictedFlagDoesNotStickFromOlderRecord(t *testing.T) {
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	now := day.Add(12 * time.Hour)

	// 09:00 safe、10:00 restricted、11:00 safe，归并结果必须是 11:00 的 safe
	logs := []model.LocationLog{
		makeLog(1, day.Add(9*time.Hour), false),
		makeLog(1, day.Add(10*time.Hour), true),
		makeLog(1, day.Add(11*time.Hour), false),
	}

	out := LatestPositions(logs, now, staleAfter)
	require.Len(t, out, 1)
	assert.Equal(t, day.Add(11*time.Hour), out[0].Log.RecordedAt)
	assert.Equal(t, ClassificationSafe, out[0].Classification)
}

func TestLatestPositionsTimestampTieKeepsFirstSeen(t *testing.T) {
	now := time.Now()
	ts := now.Add(-time.Hour)

	first := makeLog(1, ts, false)
	first.Address = "first"
	second := makeLog(1, ts, true)
	second.Address = "second"

	out := LatestPositions([]model.LocationLog{first, second}, now, staleAfter)
	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].Log.Address)
}

func TestLatestPositionsPassesThroughMalformedRecords(t *testing.T) {
	now := time.Now()

	// 缺坐标的脏记录不校验，原样透传
	malformed := model.LocationLog{
		TouristPublicID: 7,
		RecordedAt:      now.Add(-time.Hour),
	}

	out := LatestPositions([]model.LocationLog{malformed}, now, staleAfter)
	require.Len(t, out, 1)
	assert.Zero(t, out[0].Log.Latitude)
	assert.Zero(t, out[0].Log.Longitude)
	assert.Equal(t, ClassificationSafe, out[0].Classification)
}
