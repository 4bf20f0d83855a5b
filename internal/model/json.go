package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap 以 JSON 文本形式存储的字典列
type JSONMap map[string]interface{}

// Value 序列化为 JSON 字符串写入数据库
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json column: %w", err)
	}
	return string(data), nil
}

// Scan 从数据库读取并解析 JSON 字符串
// 列内容损坏时返回错误而不是静默丢弃
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for json column: %T", value)
	}

	if len(data) == 0 {
		*m = nil
		return nil
	}
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("malformed json in column: %w", err)
	}
	return nil
}

// GormDataType 统一映射为 text 列
func (JSONMap) GormDataType() string {
	return "text"
}
