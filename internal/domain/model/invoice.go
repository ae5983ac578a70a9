package model

import "time"

// 請求書。Order1件につき必ず1件、checkoutの中で1回だけ作られ、更新経路は無い
type Invoice struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Number string `gorm:"type:varchar(64);uniqueIndex;not null" json:"number"`
	UserID int64  `gorm:"not null;index" json:"user_id"`
	//1注文1請求書をDB側でも保証する
	OrderID int64 `gorm:"not null;uniqueIndex" json:"order_id"`

	//sub_total = Σ(item.price × item.qty)
	SubTotal    int64 `gorm:"not null" json:"sub_total"`
	DeliveryFee int64 `gorm:"not null" json:"delivery_fee"`
	//total = sub_total + delivery_fee
	Total int64 `gorm:"not null" json:"total"`

	DeliveryAddress ShippingAddress `gorm:"embedded;embeddedPrefix:addr_" json:"delivery_address"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
