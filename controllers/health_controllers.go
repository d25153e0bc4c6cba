package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

type HealthController struct {
	LLMEnabled bool
}

func NewHealthController(llmEnabled bool) *HealthController {
	return &HealthController{LLMEnabled: llmEnabled}
}

// Health -> liveness probe with service metadata
func (hc *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":        "academic-matchmaker",
		"version":        "1.0.0",
		"status":         "ok",
		"uptime_seconds": int(time.Since(startedAt).Seconds()),
		"llm_enabled":    hc.LLMEnabled,
		"time":           time.Now().UTC().Format(time.RFC3339),
	})
}
