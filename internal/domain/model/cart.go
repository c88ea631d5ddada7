package model

import "time"

// カートはsession_idごとに1つ、ログイン後はuser_idごとに1つ。
// 合計系は保存せず、毎回itemsから計算する。
type Cart struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string     `gorm:"type:varchar(100);not null;index" json:"session_id"`
	UserID    *string    `gorm:"type:varchar(450);index" json:"user_id,omitempty"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

// 合計金額（数量×追加時点の単価の総和）
func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	return total
}

// 数量の総和
func (c *Cart) TotalItems() int64 {
	var n int64
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
