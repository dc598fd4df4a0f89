package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UUID      string    `gorm:"uniqueIndex;size:36;not null" json:"uuid"`
	AnonName  string    `gorm:"size:50;not null" json:"anon_name"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Likes     int       `gorm:"default:0" json:"likes"`
	Dislikes  int       `gorm:"default:0" json:"dislikes"`
	CreatedAt time.Time `json:"created_at"`

	// 非数据库字段，用于查询时填充
	CommentCount int `gorm:"-" json:"comments"`
}
