package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/acadmatch/academic-matchmaker/matcher"
	"github.com/acadmatch/academic-matchmaker/models"
	"github.com/acadmatch/academic-matchmaker/utils"
)

type MatchController struct {
	DB       *gorm.DB
	Pipeline *matcher.Pipeline
}

func NewMatchController(db *gorm.DB, pipeline *matcher.Pipeline) *MatchController {
	return &MatchController{DB: db, Pipeline: pipeline}
}

// SmartMatch ranks candidates for a free-text query. A student query
// searches professors and vice versa. The response body is the bare
// MatchResult array, not the usual envelope, because the frontend consumes
// it directly.
func (mc *MatchController) SmartMatch(c *gin.Context) {
	var body struct {
		Query    string `json:"query"`
		UserType string `json:"userType"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	role := body.UserType
	if role != "professor" {
		role = "student"
	}

	pool, err := mc.candidatePool(role)
	if err != nil {
		utils.ErrorLogger.Printf("smart match: candidate pool fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load candidates", "details": err.Error()})
		return
	}

	results, err := mc.Pipeline.Rank(c.Request.Context(), body.Query, role, pool)
	if err != nil {
		if errors.Is(err, matcher.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "matching failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, results)
}

// candidatePool projects the opposite role's profiles into matcher input.
func (mc *MatchController) candidatePool(role string) ([]matcher.Candidate, error) {
	if role == "professor" {
		var students []models.Student
		if err := mc.DB.Find(&students).Error; err != nil {
			return nil, err
		}
		pool := make([]matcher.Candidate, 0, len(students))
		for _, st := range students {
			pool = append(pool, matcher.Candidate{
				ID:           st.UserID,
				Name:         st.Name,
				Title:        st.Degree,
				University:   st.University,
				ResearchArea: st.ResearchArea,
				Bio:          st.Bio,
				Keywords:     models.DecodeKeywords(st.Keywords),
			})
		}
		return pool, nil
	}

	var profs []models.Professor
	if err := mc.DB.Find(&profs).Error; err != nil {
		return nil, err
	}
	pool := make([]matcher.Candidate, 0, len(profs))
	for _, prof := range profs {
		pool = append(pool, matcher.Candidate{
			ID:           prof.UserID,
			Name:         prof.Name,
			Title:        prof.Title,
			University:   prof.University,
			ResearchArea: prof.ResearchArea,
			Bio:          prof.Bio,
			Keywords:     models.DecodeKeywords(prof.Keywords),
		})
	}
	return pool, nil
}
