package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonValue 将任意结构序列化为JSON文本列
func jsonValue(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// jsonScan 从JSON文本列反序列化
func jsonScan(dst any, value any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("无法将 %T 扫描为JSON列", value)
	}
}
