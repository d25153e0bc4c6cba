package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/acadmatch/academic-matchmaker/models"
	"github.com/acadmatch/academic-matchmaker/utils"
)

type ProfessorController struct {
	DB *gorm.DB
}

func NewProfessorController(db *gorm.DB) *ProfessorController {
	return &ProfessorController{DB: db}
}

type professorPayload struct {
	Name         string   `json:"name" binding:"required"`
	Title        string   `json:"title"`
	University   string   `json:"university"`
	Department   string   `json:"department"`
	ResearchArea string   `json:"research_area"`
	Bio          string   `json:"bio"`
	Keywords     []string `json:"keywords"`
	Lab          string   `json:"lab"`
	Publications string   `json:"publications"`
	Funding      string   `json:"funding"`
}

// GetAllProfessors
func (pc *ProfessorController) GetAllProfessors(c *gin.Context) {
	var profs []models.Professor
	if err := pc.DB.Find(&profs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All professors", profs)
}

// GetProfessorByID
func (pc *ProfessorController) GetProfessorByID(c *gin.Context) {
	id := c.Param("prof_id")
	var prof models.Professor
	if err := pc.DB.First(&prof, "user_id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Professor detail", prof)
}

// CreateProfessor -> onboarding completion for the authenticated account.
// The profile id equals the owning account id.
func (pc *ProfessorController) CreateProfessor(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var body professorPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	prof := models.Professor{
		UserID:       userID,
		Name:         body.Name,
		Title:        body.Title,
		University:   body.University,
		Department:   body.Department,
		ResearchArea: body.ResearchArea,
		Bio:          body.Bio,
		Keywords:     models.EncodeKeywords(body.Keywords),
		Lab:          body.Lab,
		Publications: body.Publications,
		Funding:      body.Funding,
	}

	if err := pc.DB.Create(&prof).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Professor profile created: %s (%s)", prof.Name, prof.UserID)
	utils.RespondJSON(c, http.StatusCreated, "Professor profile created", prof)
}

// UpdateProfessor -> owner only
func (pc *ProfessorController) UpdateProfessor(c *gin.Context) {
	id := c.Param("prof_id")
	if c.GetString("user_id") != id && c.GetString("role") != "admin" {
		utils.RespondError(c, http.StatusForbidden, errors.New("only the owner can modify this profile"))
		return
	}

	var prof models.Professor
	if err := pc.DB.First(&prof, "user_id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body professorPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{
		"name":          body.Name,
		"title":         body.Title,
		"university":    body.University,
		"department":    body.Department,
		"research_area": body.ResearchArea,
		"bio":           body.Bio,
		"keywords":      models.EncodeKeywords(body.Keywords),
		"lab":           body.Lab,
		"publications":  body.Publications,
		"funding":       body.Funding,
	}
	if err := pc.DB.Model(&prof).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Professor profile updated", prof)
}
