package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	//最小通貨単位のint64（floatは使わない）
	Price int64 `gorm:"not null" json:"price"`
	//画像はファイル名のみ。実体は外部ストレージ
	ImageURL   string         `gorm:"type:varchar(255)" json:"image_url"`
	CategoryID *int64         `gorm:"index" json:"-"`
	Category   *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags       []Tag          `gorm:"many2many:product_tags" json:"tags"`
	CreatedAt  time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
