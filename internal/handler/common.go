package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"

	"TourWatch/internal/view"
	"TourWatch/pkg/response"
)

// listOptions 从 query 解析列表过滤排序参数
// status / q / sort / order / restricted_only
func listOptions(c *app.RequestContext) view.ListOptions {
	opts := view.ListOptions{
		Status: strings.ToLower(strings.TrimSpace(c.Query("status"))),
		Search: c.Query("q"),
	}

	if sort := c.Query("sort"); sort != "" {
		opts.SortKey = view.SortKey(sort)
	} else {
		opts.SortKey = view.SortKeyCreatedAt
		opts.Descending = true
	}

	if order := c.Query("order"); order != "" {
		opts.Descending = strings.EqualFold(order, "desc")
	}

	if restricted := c.Query("restricted_only"); restricted != "" {
		opts.RestrictedOnly, _ = strconv.ParseBool(restricted)
	}

	return opts
}

// parseIDParam 解析路径里的雪花 ID，解析失败直接写 400 响应
func parseIDParam(ctx context.Context, c *app.RequestContext, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.BindError(ctx, c, fmt.Errorf("invalid %s: %q", name, raw))
		return 0, false
	}
	return id, true
}
