package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
)

// InitDB stores the shared database handle for controllers that are not
// constructed with one (websocket handlers, background services).
func InitDB(database *gorm.DB) {
	once.Do(func() {
		db = database
	})
}

func GetDB() *gorm.DB {
	return db
}
