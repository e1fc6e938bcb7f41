package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money 金额类型，入库与出参一律保留 2 位小数
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// NewMoneyFromFloat 从 float 创建金额
func NewMoneyFromFloat(amount float64) Money {
	return Money{Decimal: decimal.NewFromFloat(amount).Round(2)}
}

// MarshalJSON 输出 2 位小数的字符串，避免前端丢精度
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.Round(2).StringFixed(2))
}

// UnmarshalJSON 兼容字符串与数字两种入参
func (m *Money) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		raw = []byte(s)
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return err
	}
	m.Decimal = d.Round(2)
	return nil
}

// Value 数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}
