package models

import "time"

// Message belongs to exactly one chat and is immutable once written.
// CreatedAt may still be zero on a freshly buffered message; ordering
// helpers treat that as "sorts last".
type Message struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	ChatID    string    `gorm:"type:varchar(128);not null;index:idx_chat_created,priority:1" json:"chat_id"`
	SenderID  string    `gorm:"type:char(36);not null" json:"sender_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index:idx_chat_created,priority:2" json:"created_at"`
}
