package models

import "time"

type User struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	Name      string `gorm:"type:varchar(255);not null"`
	Email     string `gorm:"type:varchar(255);unique;not null"`
	Password  string `gorm:"type:varchar(255);not null"`
	Role      string `gorm:"type:varchar(32);not null"` // student, professor, admin
	CreatedAt time.Time
	UpdatedAt time.Time
}
