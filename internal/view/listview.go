package view

import (
	"sort"
	"strings"
	"time"

	"TourWatch/pkg/errors"
)

// SortKey 排序键枚举，固定集合之外的取值直接报错
type SortKey string

const (
	SortKeyCreatedAt SortKey = "created_at"
	SortKeyStatus    SortKey = "status"
	SortKeyName      SortKey = "name"
)

// ListOptions 列表过滤排序参数。
// 状态比较规则：入口处统一转小写，之后全部精确匹配。
type ListOptions struct {
	Status         string // 为空则不过滤
	Search         string // 大小写不敏感的子串匹配
	RestrictedOnly bool   // 只保留限制区域内的记录
	SortKey        SortKey
	Descending     bool
}

// Fields 参与过滤排序的字段，由调用方从具体条目里提取
type Fields struct {
	Status           string
	Name             string
	SearchText       []string // 参与子串匹配的字段（名称、描述、ID 等）
	CreatedAt        time.Time
	InRestrictedZone bool
}

// Apply 对内存中的集合做过滤 + 排序，纯函数，不修改入参。
// 相等键的相对顺序不做稳定性保证。
func Apply[T any](items []T, opts ListOptions, extract func(T) Fields) ([]T, error) {
	if opts.SortKey != "" {
		switch opts.SortKey {
		case SortKeyCreatedAt, SortKeyStatus, SortKeyName:
		default:
			return nil, errors.SortKeyInvalid
		}
	}

	search := strings.ToLower(opts.Search)

	out := make([]T, 0, len(items))
	for _, item := range items {
		f := extract(item)

		if opts.Status != "" && f.Status != opts.Status {
			continue
		}
		if opts.RestrictedOnly && !f.InRestrictedZone {
			continue
		}
		if search != "" && !matchSearch(f.SearchText, search) {
			continue
		}

		out = append(out, item)
	}

	if opts.SortKey == "" {
		return out, nil
	}

	sort.Slice(out, func(i, j int) bool {
		fi, fj := extract(out[i]), extract(out[j])
		less := compareFields(fi, fj, opts.SortKey)
		if opts.Descending {
			return !less && !equalFields(fi, fj, opts.SortKey)
		}
		return less
	})

	return out, nil
}

func matchSearch(texts []string, search string) bool {
	for _, t := range texts {
		if strings.Contains(strings.ToLower(t), search) {
			return true
		}
	}
	return false
}

func compareFields(a, b Fields, key SortKey) bool {
	switch key {
	case SortKeyCreatedAt:
		return a.CreatedAt.Before(b.CreatedAt)
	case SortKeyStatus:
		return a.Status < b.Status
	case SortKeyName:
		return a.Name < b.Name
	default:
		return false
	}
}

func equalFields(a, b Fields, key SortKey) bool {
	switch key {
	case SortKeyCreatedAt:
		return a.CreatedAt.Equal(b.CreatedAt)
	case SortKeyStatus:
		return a.Status == b.Status
	case SortKeyName:
		return a.Name == b.Name
	default:
		return false
	}
}
