package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadmatch/academic-matchmaker/services"
)

type AssistantController struct {
	Assistant *services.AssistantService
}

func NewAssistantController(assistant *services.AssistantService) *AssistantController {
	return &AssistantController{Assistant: assistant}
}

// Query answers a question about one profile. A missing profile comes back
// with profileFound=false, not a 404, so the UI can render a soft state.
func (ac *AssistantController) Query(c *gin.Context) {
	var body struct {
		ProfileID   string `json:"profileId" binding:"required"`
		ProfileType string `json:"profileType"`
		Query       string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	answer, found := ac.Assistant.Answer(c.Request.Context(), body.ProfileID, body.ProfileType, body.Query)
	c.JSON(http.StatusOK, gin.H{
		"answer":       answer,
		"profileFound": found,
	})
}
