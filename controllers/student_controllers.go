package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/acadmatch/academic-matchmaker/models"
	"github.com/acadmatch/academic-matchmaker/utils"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

type studentPayload struct {
	Name         string   `json:"name" binding:"required"`
	Degree       string   `json:"degree"`
	University   string   `json:"university"`
	Department   string   `json:"department"`
	ResearchArea string   `json:"research_area"`
	Bio          string   `json:"bio"`
	Keywords     []string `json:"keywords"`
	Advisor      string   `json:"advisor"`
}

// GetAllStudents
func (sc *StudentController) GetAllStudents(c *gin.Context) {
	var students []models.Student
	if err := sc.DB.Find(&students).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All students", students)
}

// GetStudentByID
func (sc *StudentController) GetStudentByID(c *gin.Context) {
	id := c.Param("student_id")
	var student models.Student
	if err := sc.DB.First(&student, "user_id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Student detail", student)
}

// CreateStudent -> onboarding completion
func (sc *StudentController) CreateStudent(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var body studentPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	student := models.Student{
		UserID:       userID,
		Name:         body.Name,
		Degree:       body.Degree,
		University:   body.University,
		Department:   body.Department,
		ResearchArea: body.ResearchArea,
		Bio:          body.Bio,
		Keywords:     models.EncodeKeywords(body.Keywords),
		Advisor:      body.Advisor,
	}

	if err := sc.DB.Create(&student).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Student profile created: %s (%s)", student.Name, student.UserID)
	utils.RespondJSON(c, http.StatusCreated, "Student profile created", student)
}

// UpdateStudent -> owner only
func (sc *StudentController) UpdateStudent(c *gin.Context) {
	id := c.Param("student_id")
	if c.GetString("user_id") != id && c.GetString("role") != "admin" {
		utils.RespondError(c, http.StatusForbidden, errors.New("only the owner can modify this profile"))
		return
	}

	var student models.Student
	if err := sc.DB.First(&student, "user_id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body studentPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{
		"name":          body.Name,
		"degree":        body.Degree,
		"university":    body.University,
		"department":    body.Department,
		"research_area": body.ResearchArea,
		"bio":           body.Bio,
		"keywords":      models.EncodeKeywords(body.Keywords),
		"advisor":       body.Advisor,
	}
	if err := sc.DB.Model(&student).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Student profile updated", student)
}
