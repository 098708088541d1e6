package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TourWatch/pkg/errors"
)

type listItem struct {
	ID         string
	Name       string
	Status     string
	Restricted bool
	CreatedAt  time.Time
}

func extractListItem(it listItem) Fields {
	return Fields{
		Status:           it.Status,
		Name:             it.Name,
		SearchText:       []string{it.Name, it.ID},
		CreatedAt:        it.CreatedAt,
		InRestrictedZone: it.Restricted,
	}
}

func sampleItems() []listItem {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return []listItem{
		{ID: "a1", Name: "Anita", Status: "pending", CreatedAt: base.Add(3 * time.Hour)},
		{ID: "b2", Name: "Bikram", Status: "active", Restricted: true, CreatedAt: base.Add(1 * time.Hour)},
		{ID: "c3", Name: "Chen", Status: "resolved", CreatedAt: base.Add(4 * time.Hour)},
		{ID: "d4", Name: "Dorji", Status: "pending", CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestApplyStatusFilterExactMatch(t *testing.T) {
	out, err := Apply(sampleItems(), ListOptions{Status: "pending"}, extractListItem)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, it := range out {
		assert.Equal(t, "pending", it.Status)
	}

	// 状态在入口处统一小写，之后精确比较，大写值不会命中
	out, err = Apply(sampleItems(), ListOptions{Status: "Pending"}, extractListItem)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	out, err := Apply(sampleItems(), ListOptions{Search: "BIKRAM"}, extractListItem)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "b2", out[0].ID)

	out, err = Apply(sampleItems(), ListOptions{Search: "c3"}, extractListItem)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Chen", out[0].Name)
}

func TestApplyRestrictedOnly(t *testing.T) {
	out, err := Apply(sampleItems(), ListOptions{RestrictedOnly: true}, extractListItem)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Bikram", out[0].Name)
}

func TestApplySortReversal(t *testing.T) {
	items := sampleItems()

	asc, err := Apply(items, ListOptions{SortKey: SortKeyCreatedAt}, extractListItem)
	require.NoError(t, err)
	desc, err := Apply(items, ListOptions{SortKey: SortKeyCreatedAt, Descending: true}, extractListItem)
	require.NoError(t, err)

	// 时间戳唯一时，升序与降序互为镜像
	require.Len(t, asc, len(items))
	require.Len(t, desc, len(items))
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

func TestApplySortByName(t *testing.T) {
	out, err := Apply(sampleItems(), ListOptions{SortKey: SortKeyName}, extractListItem)
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, "Anita", out[0].Name)
	assert.Equal(t, "Dorji", out[3].Name)
}

func TestApplyInvalidSortKey(t *testing.T) {
	_, err := Apply(sampleItems(), ListOptions{SortKey: SortKey("severity")}, extractListItem)
	assert.ErrorIs(t, err, errors.SortKeyInvalid)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	first := items[0].ID

	_, err := Apply(items, ListOptions{SortKey: SortKeyCreatedAt, Descending: true}, extractListItem)
	require.NoError(t, err)
	assert.Equal(t, first, items[0].ID)
}
