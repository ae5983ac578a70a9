package model

import "time"

// 配送先住所
// 注文時には参照ではなく値コピーでorders/invoicesへ取り込む
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//地域4階層＋詳細
	Province string `gorm:"type:varchar(255);not null" json:"province"`
	Regency  string `gorm:"type:varchar(255);not null" json:"regency"`
	District string `gorm:"type:varchar(255);not null" json:"district"`
	Village  string `gorm:"type:varchar(255);not null" json:"village"`
	Detail   string `gorm:"type:text" json:"detail"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
