package models

import "time"

// Chat is a two-party conversation. Its primary key is the canonical id
// derived from the participant pair, so both parties always address the
// same record.
type Chat struct {
	ID            string     `gorm:"type:varchar(128);primaryKey" json:"id"`
	ParticipantA  string     `gorm:"type:char(36);not null;index" json:"participant_a"`
	ParticipantB  string     `gorm:"type:char(36);not null;index" json:"participant_b"`
	LastMessage   string     `gorm:"type:text" json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	LastSenderID  string     `gorm:"type:char(36)" json:"last_sender_id"`
	Pinned        bool       `gorm:"default:false" json:"pinned"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Messages []Message `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE" json:"-"`
}
