package model

import "time"

// カートの明細
// (user, product)につき1行。カート更新で丸ごと入れ替え、checkoutで全削除
type CartItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64 `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID int64 `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int64 `gorm:"not null" json:"qty"`
	//カート投入時点の価格スナップショット
	UnitPriceSnapshot int64  `gorm:"not null;column:unit_price_snapshot" json:"unit_price_snapshot"`
	ProductName       string `gorm:"type:varchar(255);not null" json:"product_name"`
	ImageURL          string `gorm:"type:varchar(255)" json:"image_url"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
