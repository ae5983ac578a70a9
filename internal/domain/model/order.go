package model

import "time"

type OrderStatus string

const (
	OrderStatusWaitingPayment OrderStatus = "waiting_payment"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusInDelivery     OrderStatus = "in_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
)

// checkout時点の住所の値コピー。元のAddressを後から編集しても過去の注文は変わらない
type ShippingAddress struct {
	Province string `gorm:"type:varchar(255);not null" json:"province"`
	Regency  string `gorm:"type:varchar(255);not null" json:"regency"`
	District string `gorm:"type:varchar(255);not null" json:"district"`
	Village  string `gorm:"type:varchar(255);not null" json:"village"`
	Detail   string `gorm:"type:text" json:"detail"`
}

type Order struct {
	ID     int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64       `gorm:"not null;index" json:"user_id"`
	Status OrderStatus `gorm:"type:varchar(20);not null;default:'waiting_payment'" json:"status"`
	//未指定は0
	DeliveryFee     int64           `gorm:"not null;default:0" json:"delivery_fee"`
	DeliveryAddress ShippingAddress `gorm:"embedded;embeddedPrefix:addr_" json:"delivery_address"`
	CreatedAt       time.Time       `gorm:"not null;index;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
