package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	r, _ := setupAppRouter(t)

	w := postJSON(r, "/auth/register", "", map[string]interface{}{
		"name":     "Test Student",
		"email":    "student@example.com",
		"password": "secret123",
		"role":     "student",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/auth/login", "", map[string]interface{}{
		"email":    "student@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"user"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "student", resp.Data.User.Role)
}

func TestLoginRejectsWrongPasswordForRegisteredUser(t *testing.T) {
	r, _ := setupAppRouter(t)

	w := postJSON(r, "/auth/register", "", map[string]interface{}{
		"name":     "Test Student",
		"email":    "student@example.com",
		"password": "secret123",
		"role":     "student",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/auth/login", "", map[string]interface{}{
		"email":    "student@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Demo-mode gap carried over from the original system: unknown emails with
// any non-empty credentials still get a token. See DESIGN.md.
func TestDemoLoginForUnknownEmail(t *testing.T) {
	r, _ := setupAppRouter(t)

	w := postJSON(r, "/auth/login", "", map[string]interface{}{
		"email":    "walkin@example.com",
		"password": "anything",
		"role":     "professor",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				Role string `json:"role"`
			} `json:"user"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "professor", resp.Data.User.Role)
}

func TestLoginRejectsEmptyCredentials(t *testing.T) {
	r, _ := setupAppRouter(t)

	w := postJSON(r, "/auth/login", "", map[string]interface{}{
		"email":    "",
		"password": "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Every registered route passes through the per-IP limiter; a burst from
// one client must eventually hit 429.
func TestGlobalRateLimiterCoversRoutes(t *testing.T) {
	r, _ := setupAppRouter(t)

	sawLimited := false
	for i := 0; i < 60; i++ {
		w := getWithToken(r, "/health", "")
		if w.Code == http.StatusTooManyRequests {
			sawLimited = true
			break
		}
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.True(t, sawLimited)
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := setupAppRouter(t)

	w := getWithToken(r, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "academic-matchmaker", body["service"])
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["llm_enabled"])
}
