package models

import (
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostUUID  string    `gorm:"size:36;not null;index" json:"post_uuid"`
	AnonName  string    `gorm:"size:50;not null" json:"anon_name"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
