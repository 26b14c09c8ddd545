package models

import "time"

// TransactionType categorizes a financial ledger entry.
type TransactionType string

const (
	TransactionEventRevenue  TransactionType = "event_revenue"
	TransactionRentalRevenue TransactionType = "rental_revenue"
	TransactionRetailRevenue TransactionType = "retail_revenue"
	TransactionExpense       TransactionType = "expense"
)

// Transaction is an immutable financial ledger entry, created at event
// settlement for paid attendees or by manual admin entry.
type Transaction struct {
	ID   string    `gorm:"primaryKey;type:uuid" json:"id"`
	Date time.Time `gorm:"not null;index" json:"date"`

	Type   TransactionType `gorm:"type:varchar(16);not null" json:"type"`
	Amount float64         `gorm:"not null" json:"amount"`

	RelatedEventID  string `gorm:"index" json:"related_event_id,omitempty"`
	RelatedPlayerID string `gorm:"index" json:"related_player_id,omitempty"`

	PaymentStatus PaymentStatus `gorm:"type:varchar(16)" json:"payment_status,omitempty"`
	Description   string        `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
