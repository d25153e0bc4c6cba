package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/acadmatch/academic-matchmaker/models"
	"github.com/acadmatch/academic-matchmaker/realtime"
)

// ChangeMonitor polls for rows written since the last tick and pushes them
// to connected websocket clients. Writers only touch the database; this
// loop is the single delivery path, so clients see the same event no
// matter which code path produced the row.
type ChangeMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration

	watermark time.Time
}

func NewChangeMonitor(db *gorm.DB) *ChangeMonitor {
	return &ChangeMonitor{
		DB:        db,
		StopChan:  make(chan struct{}),
		Interval:  1 * time.Second,
		watermark: time.Now(),
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	cutoff := cm.watermark

	// The watermark only moves to timestamps actually observed. A row
	// committed while these queries run, stamped earlier than the wall
	// clock, is still newer than the watermark and gets picked up on the
	// next tick instead of being skipped forever.
	next := cutoff
	bump := func(ts time.Time) {
		if ts.After(next) {
			next = ts
		}
	}

	var msgs []models.Message
	if err := cm.DB.Where("created_at > ?", cutoff).
		Order("created_at ASC").
		Limit(100).
		Find(&msgs).Error; err != nil {
		log.Printf("Error fetching new messages: %v", err)
		return
	}
	for _, msg := range msgs {
		bump(msg.CreatedAt)
		var chat models.Chat
		if err := cm.DB.First(&chat, "id = ?", msg.ChatID).Error; err != nil {
			log.Printf("Error loading chat %s for message push: %v", msg.ChatID, err)
			continue
		}
		realtime.PushChatMessage(msg, chat.ParticipantA, chat.ParticipantB)
	}

	var chats []models.Chat
	if err := cm.DB.Where("updated_at > ?", cutoff).
		Find(&chats).Error; err != nil {
		log.Printf("Error fetching chat updates: %v", err)
	} else {
		for _, chat := range chats {
			bump(chat.UpdatedAt)
			realtime.PushChatUpdate(chat)
		}
	}

	var notifs []models.Notification
	if err := cm.DB.Where("created_at > ?", cutoff).
		Order("created_at ASC").
		Limit(100).
		Find(&notifs).Error; err != nil {
		log.Printf("Error fetching new notifications: %v", err)
	} else {
		for _, notif := range notifs {
			bump(notif.CreatedAt)
			realtime.PushNotification(notif)
		}
	}

	var posts []models.Post
	if err := cm.DB.Where("created_at > ?", cutoff).
		Order("created_at ASC").
		Find(&posts).Error; err != nil {
		log.Printf("Error fetching new posts: %v", err)
	} else {
		for _, post := range posts {
			bump(post.CreatedAt)
			realtime.BroadcastPostUpdate(post)
		}
	}

	cm.watermark = next
}
