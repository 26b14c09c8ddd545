package models

import "time"

// RaffleStatus lifecycle. Completed is terminal — a raffle can be drawn
// at most once.
type RaffleStatus string

const (
	RaffleStatusUpcoming  RaffleStatus = "upcoming"
	RaffleStatusActive    RaffleStatus = "active"
	RaffleStatusCompleted RaffleStatus = "completed"
)

// Raffle holds an ordered prize list (1–3 places) and a ticket pool.
// Winners stay empty until the draw.
type Raffle struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"index" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	TicketPrice float64   `json:"ticket_price" gorm:"default:0"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`

	Status RaffleStatus `json:"status" gorm:"type:varchar(16);default:'upcoming'"`

	Prizes  []RafflePrize  `json:"prizes,omitempty" gorm:"foreignKey:RaffleID"`
	Tickets []RaffleTicket `json:"tickets,omitempty" gorm:"foreignKey:RaffleID"`
	Winners []RaffleWinner `json:"winners,omitempty" gorm:"foreignKey:RaffleID"`

	Timestamps
}

// RafflePrize occupies a unique place 1..3 within its raffle.
type RafflePrize struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	RaffleID    string `gorm:"not null;uniqueIndex:idx_raffle_place" json:"raffle_id"`
	Place       int    `gorm:"not null;uniqueIndex:idx_raffle_place;check:place BETWEEN 1 AND 3" json:"place"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"type:text" json:"image_url"`
}

// RaffleTicket is owned by exactly one player; a player may buy several.
type RaffleTicket struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	RaffleID    string    `gorm:"index;not null" json:"raffle_id"`
	PlayerID    string    `gorm:"index;not null" json:"player_id"`
	PurchasedAt time.Time `json:"purchased_at" gorm:"autoCreateTime"`
}

// RaffleWinner pairs one prize with one ticket. A ticket wins at most
// one prize per draw.
type RaffleWinner struct {
	ID       string    `gorm:"primaryKey;type:uuid" json:"id"`
	RaffleID string    `gorm:"index;not null" json:"raffle_id"`
	PrizeID  string    `gorm:"uniqueIndex;not null" json:"prize_id"`
	TicketID string    `gorm:"uniqueIndex;not null" json:"ticket_id"`
	PlayerID string    `gorm:"index;not null" json:"player_id"`
	DrawnAt  time.Time `json:"drawn_at"`
}
