package models

import "time"

// EventStatus tracks the event lifecycle. Completed and Cancelled are
// terminal; settlement is only valid from Upcoming or In Progress.
type EventStatus string

const (
	EventStatusUpcoming   EventStatus = "upcoming"
	EventStatusInProgress EventStatus = "in_progress"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusCancelled  EventStatus = "cancelled"
)

// PaymentStatus of an attendee's game fee.
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusWaived   PaymentStatus = "waived"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsPaid reports whether the status counts as revenue at settlement.
func (s PaymentStatus) IsPaid() bool {
	return s == PaymentStatusPaid
}

// Event is one league game day. Signups are pre-registration and stay
// mutable until settlement retires them; attendees are confirmed
// participants carrying live performance and payment data.
type Event struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"index" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"start_time" gorm:"not null"`
	EndTime     time.Time `json:"end_time"`

	GameFee float64     `json:"game_fee" gorm:"default:0"`
	Status  EventStatus `json:"status" gorm:"type:varchar(16);default:'upcoming'"`

	// Per-event overrides: rule code → XP value, gear item id → rental price
	XPOverrides          Int64Map   `gorm:"type:jsonb" json:"xp_overrides,omitempty"`
	RentalPriceOverrides Float64Map `gorm:"type:jsonb" json:"rental_price_overrides,omitempty"`

	Signups   []EventSignup   `json:"signups,omitempty" gorm:"foreignKey:EventID"`
	Attendees []EventAttendee `json:"attendees,omitempty" gorm:"foreignKey:EventID"`

	Timestamps
}

// EventSignup is a pre-registration. Settlement returns the ids of all
// signups for the event so the store layer deletes them.
type EventSignup struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	EventID   string    `gorm:"not null;uniqueIndex:idx_event_signup" json:"event_id"`
	PlayerID  string    `gorm:"not null;uniqueIndex:idx_event_signup" json:"player_id"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// EventAttendee is a checked-in participant with live stats for the day.
type EventAttendee struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	EventID  string `gorm:"not null;uniqueIndex:idx_event_attendee" json:"event_id"`
	PlayerID string `gorm:"not null;uniqueIndex:idx_event_attendee" json:"player_id"`

	Kills     int64 `json:"kills" gorm:"default:0"`
	Deaths    int64 `json:"deaths" gorm:"default:0"`
	Headshots int64 `json:"headshots" gorm:"default:0"`

	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(16);default:'pending'"`
	RentedGearIDs StringList    `gorm:"type:jsonb" json:"rented_gear_ids,omitempty"`
	Discount      float64       `json:"discount" gorm:"default:0"` // deducted from the game fee only

	CheckedInAt time.Time `json:"checked_in_at" gorm:"autoCreateTime"`
}
