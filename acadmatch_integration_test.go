package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/acadmatch/academic-matchmaker/llm"
	"github.com/acadmatch/academic-matchmaker/models"
	"github.com/acadmatch/academic-matchmaker/router"
	"github.com/acadmatch/academic-matchmaker/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration covers the main flow:
// 0. Seed a professor directory, register two users, login -> tokens
// 1. Public smart match finds the seeded professor
// 2. Both users open the same conversation
// 3. Student sends a message => professor gets a notification
// 4. Mark the notification read (twice, second is a no-op)
// 5. Delete the chat => reopening yields an empty history
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB()
	r := router.SetupRouter(db, llm.NewFromEnv())

	aliceID, aliceToken := registerAndLogin(t, r, "alice@uni.edu", "student")
	bobID, bobToken := registerAndLogin(t, r, "bob@uni.edu", "professor")

	publicMatchTest(t, r)

	chatID := openChatTest(t, r, aliceToken, bobID)
	if other := openChatTest(t, r, bobToken, aliceID); other != chatID {
		t.Fatalf("conversation id differs by direction: %s vs %s", chatID, other)
	}

	sendMessageTest(t, r, aliceToken, chatID, "Hello professor, I read your paper.")

	notifID := checkNotificationTest(t, r, bobToken)
	markReadTest(t, r, bobToken, notifID)
	markReadTest(t, r, bobToken, notifID) // idempotent

	deleteChatTest(t, r, aliceToken, chatID)

	if fresh := openChatTest(t, r, aliceToken, bobID); fresh != chatID {
		t.Fatalf("reopened conversation should reuse canonical id, got %s", fresh)
	}
	if msgs := getMessagesTest(t, r, aliceToken, chatID); len(msgs) != 0 {
		t.Fatalf("reopened conversation should start empty, got %d messages", len(msgs))
	}
}

func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Professor{},
		&models.Student{},
		&models.Post{},
		&models.Chat{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Directory entry for the public match step
	db.Create(&models.Professor{
		UserID:       "prof-integration",
		Name:         "Elena Vasquez",
		Title:        "Professor",
		University:   "Stanford",
		ResearchArea: "clinical prediction",
		Bio:          "healthcare machine learning applied to diagnostics",
	})

	return db
}

func registerAndLogin(t *testing.T, r *gin.Engine, email, role string) (userID, token string) {
	regBody, _ := json.Marshal(map[string]string{
		"name":     email,
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(regBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: code=%d, body=%s", email, w.Code, w.Body.String())
	}

	loginBody, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": "secret123",
	})
	req = httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(loginBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: code=%d, body=%s", email, w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Token string `json:"token"`
			User  struct {
				ID string `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Status || resp.Data.Token == "" || resp.Data.User.ID == "" {
		t.Fatalf("login %s: incomplete response %s", email, w.Body.String())
	}
	return resp.Data.User.ID, resp.Data.Token
}

// publicMatchTest -> POST /smart-match-public without a token, fallback
// ranking must surface the seeded professor as a bare JSON array.
func publicMatchTest(t *testing.T, r *gin.Engine) {
	body, _ := json.Marshal(map[string]string{"query": "healthcare machine learning"})
	req := httptest.NewRequest(http.MethodPost, "/smart-match-public", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("publicMatchTest: code=%d, body=%s", w.Code, w.Body.String())
	}

	var results []struct {
		ID              string  `json:"id"`
		Name            string  `json:"name"`
		SimilarityScore float64 `json:"similarityScore"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("publicMatchTest: response is not a JSON array: %s", w.Body.String())
	}
	if len(results) == 0 || results[0].ID != "prof-integration" {
		t.Fatalf("publicMatchTest: seeded professor not matched: %s", w.Body.String())
	}
	if results[0].SimilarityScore < 0 || results[0].SimilarityScore > 1 {
		t.Fatalf("publicMatchTest: score out of range: %v", results[0].SimilarityScore)
	}
}

func openChatTest(t *testing.T, r *gin.Engine, token, partnerID string) string {
	body, _ := json.Marshal(map[string]string{"partner_id": partnerID})
	req := httptest.NewRequest(http.MethodPost, "/chats", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("openChatTest: code=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Status || resp.Data.ID == "" {
		t.Fatalf("openChatTest: incomplete response %s", w.Body.String())
	}
	return resp.Data.ID
}

func sendMessageTest(t *testing.T, r *gin.Engine, token, chatID, text string) {
	body, _ := json.Marshal(map[string]string{"text": text})
	req := httptest.NewRequest(http.MethodPost, "/chats/"+chatID+"/messages", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("sendMessageTest: code=%d, body=%s", w.Code, w.Body.String())
	}
}

func getMessagesTest(t *testing.T, r *gin.Engine, token, chatID string) []map[string]interface{} {
	req := httptest.NewRequest(http.MethodGet, "/chats/"+chatID+"/messages", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("getMessagesTest: code=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Data
}

// checkNotificationTest -> the recipient has exactly one unread message
// notification; returns its id.
func checkNotificationTest(t *testing.T, r *gin.Engine, token string) string {
	req := httptest.NewRequest(http.MethodGet, "/notifications/unread-count", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unread-count: code=%d, body=%s", w.Code, w.Body.String())
	}
	var countResp struct {
		Data struct {
			Unread int64 `json:"unread"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &countResp)
	if countResp.Data.Unread != 1 {
		t.Fatalf("unread-count: want 1, got %d", countResp.Data.Unread)
	}

	req = httptest.NewRequest(http.MethodGet, "/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("notifications: code=%d, body=%s", w.Code, w.Body.String())
	}
	var listResp struct {
		Data []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
			Read bool   `json:"read"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &listResp)
	if len(listResp.Data) != 1 {
		t.Fatalf("notifications: want 1 entry, got %d", len(listResp.Data))
	}
	if listResp.Data[0].Type != "message" || listResp.Data[0].Read {
		t.Fatalf("notifications: unexpected entry %+v", listResp.Data[0])
	}
	return listResp.Data[0].ID
}

func markReadTest(t *testing.T, r *gin.Engine, token, notifID string) {
	req := httptest.NewRequest(http.MethodPatch, "/notifications/"+notifID+"/read", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("markReadTest: code=%d, body=%s", w.Code, w.Body.String())
	}
}

func deleteChatTest(t *testing.T, r *gin.Engine, token, chatID string) {
	req := httptest.NewRequest(http.MethodDelete, "/chats/"+chatID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("deleteChatTest: code=%d, body=%s", w.Code, w.Body.String())
	}
}
