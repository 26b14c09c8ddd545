package models

// GearItem is a rentable piece of equipment. Settlement bills rentals at
// the event's override price when set, else SalePrice.
type GearItem struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	SalePrice float64 `json:"sale_price" gorm:"default:0"`

	Timestamps
}
