package models

import (
	"time"
)

// Visitor is a timestamped marker written once per root-page load.
// It has no identity and no relationships; only the count matters.
type Visitor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
