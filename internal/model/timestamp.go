package model

import (
	"fmt"
	"time"
)

const (
	// TimestampLayout 时间戳的标准字符串形式，按日期前缀统计充值时以它为准
	TimestampLayout = "2006-01-02T15:04:05"
	DateLayout      = "2006-01-02"
)

// 前端提交的时间格式，按顺序尝试
var inputLayouts = []string{
	TimestampLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
}

// ParseTimestamp 解析前端提交的时间
//
// 不带时区的输入按墙上时间处理并存为 UTC；带时区的 RFC3339 输入换算到 UTC。
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析时间: %q", s)
}

// FormatTimestamp 返回时间戳的标准字符串形式
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// DateOf 返回时间戳所属的自然日
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
