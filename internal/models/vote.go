package models

import (
	"time"
)

// Vote values. There is no neutral value: a neutral (post, voter) pair
// simply has no row.
const (
	VoteLike    = 1
	VoteDislike = -1
)

type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_post_voter" json:"post_id"`
	AnonName  string    `gorm:"size:50;not null;uniqueIndex:idx_post_voter" json:"anon_name"`
	Value     int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
}
