package models

import "time"

type Post struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	AuthorID   string    `gorm:"type:char(36);not null;index" json:"author_id"`
	AuthorName string    `gorm:"type:varchar(255)" json:"author_name"`
	AuthorRole string    `gorm:"type:varchar(32)" json:"author_role"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
