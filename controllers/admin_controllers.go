package controllers

import (
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acadmatch/academic-matchmaker/models"
	"github.com/acadmatch/academic-matchmaker/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetStats -> record counts for the admin dashboard
func (ac *AdminController) GetStats(c *gin.Context) {
	stats := gin.H{}
	counts := map[string]interface{}{
		"users":         &models.User{},
		"professors":    &models.Professor{},
		"students":      &models.Student{},
		"posts":         &models.Post{},
		"chats":         &models.Chat{},
		"messages":      &models.Message{},
		"notifications": &models.Notification{},
	}
	for name, model := range counts {
		var count int64
		if err := ac.DB.Model(model).Count(&count).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		stats[name] = count
	}
	utils.RespondJSON(c, http.StatusOK, "Platform stats", stats)
}

// ImportProfessors bulk-creates professor profiles from an uploaded CSV.
// Expected header:
// name,title,university,department,research_area,bio,keywords
// with keywords separated by ";". Rows that fail to insert are reported,
// not fatal.
func (ac *AdminController) ImportProfessors(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("csv upload required in field 'file'"))
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("empty or unreadable csv"))
		return
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["name"]; !ok {
		utils.RespondError(c, http.StatusBadRequest, errors.New("csv must have a 'name' column"))
		return
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	imported := 0
	var failed []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			failed = append(failed, err.Error())
			continue
		}

		name := field(record, "name")
		if name == "" {
			continue
		}

		prof := models.Professor{
			UserID:       uuid.NewString(),
			Name:         name,
			Title:        field(record, "title"),
			University:   field(record, "university"),
			Department:   field(record, "department"),
			ResearchArea: field(record, "research_area"),
			Bio:          field(record, "bio"),
			Keywords:     models.EncodeKeywords(strings.Split(field(record, "keywords"), ";")),
		}
		if err := ac.DB.Create(&prof).Error; err != nil {
			failed = append(failed, name+": "+err.Error())
			continue
		}
		imported++
	}

	utils.InfoLogger.Printf("CSV import: %d professors imported, %d failed", imported, len(failed))
	utils.RespondJSON(c, http.StatusOK, "Import finished", gin.H{
		"imported": imported,
		"failed":   failed,
	})
}
