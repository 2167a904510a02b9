package model

import "time"

type OrderStatus string

const (
	//作成直後はPENDINGのみ（支払いは着払いなのでライフサイクルはここまで）
	OrderStatusPending OrderStatus = "PENDING"
)

type Order struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64       `gorm:"not null;index" json:"customer_id"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//確定時点のカート合計。後から再計算しない。
	TotalAmount float64 `gorm:"not null" json:"total_amount"`

	IdempotencyKey string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
