// Package timex 提供数据库与 JSON 友好的时间类型
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const layout = "2006-01-02 15:04:05"

// Time 基于 time.Time 的别名类型
// JSON 序列化为 "2006-01-02 15:04:05"，空值序列化为 null
type Time time.Time

// Now 返回当前时间
func Now() Time {
	return Time(time.Now())
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) String() string {
	return time.Time(t).Format(layout)
}

// MarshalJSON 实现 json.Marshaler
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

// UnmarshalJSON 实现 json.Unmarshaler，兼容 RFC3339 与本地格式
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*t = Time(time.Time{})
		return nil
	}
	s = s[1 : len(s)-1]
	if v, err := time.Parse(time.RFC3339, s); err == nil {
		*t = Time(v)
		return nil
	}
	v, err := time.ParseInLocation(layout, s, time.Local)
	if err != nil {
		return err
	}
	*t = Time(v)
	return nil
}

// Value 实现 driver.Valuer，供 gorm 写入
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan 实现 sql.Scanner，供 gorm 读出
func (t *Time) Scan(v any) error {
	switch value := v.(type) {
	case nil:
		*t = Time(time.Time{})
	case time.Time:
		*t = Time(value)
	case string:
		parsed, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, value)
			if err != nil {
				return err
			}
		}
		*t = Time(parsed)
	case []byte:
		return t.Scan(string(value))
	default:
		return fmt.Errorf("cannot convert %v to timex.Time", v)
	}
	return nil
}
