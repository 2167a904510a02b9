package model

import "time"

// 注文者。電話番号で同一人物を引き当てる。
type Customer struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	//電話番号が自然キー
	PhoneNumber string `gorm:"type:varchar(30);not null;uniqueIndex" json:"phone_number"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
