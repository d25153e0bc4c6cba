package Controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acadmatch/academic-matchmaker/models"
	"github.com/acadmatch/academic-matchmaker/utils"
)

func uploadCSV(r http.Handler, url, token, csvBody string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("file", "professors.csv")
	part.Write([]byte(csvBody))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportProfessorsFromCSV(t *testing.T) {
	r, db := setupAppRouter(t)
	adminToken, _ := utils.GenerateToken("admin-1", "admin")

	csvBody := "name,title,university,department,research_area,bio,keywords\n" +
		"Grace Okafor,Professor,ETH,CS,distributed systems,consensus protocols,Consensus; Raft ;consensus\n" +
		",Professor,Nowhere,,,,\n" + // no name, skipped
		"Hana Sato,Lecturer,Kyoto,Biology,genomics,,sequencing\n"

	w := uploadCSV(r, "/admin/professors/import", adminToken, csvBody)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Imported int      `json:"imported"`
			Failed   []string `json:"failed"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Equal(t, 2, resp.Data.Imported)
	assert.Empty(t, resp.Data.Failed)

	var prof models.Professor
	assert.NoError(t, db.First(&prof, "name = ?", "Grace Okafor").Error)
	assert.Equal(t, []string{"consensus", "raft"}, models.DecodeKeywords(prof.Keywords))

	var count int64
	db.Model(&models.Professor{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestImportProfessorsRejectsMissingFile(t *testing.T) {
	r, _ := setupAppRouter(t)
	adminToken, _ := utils.GenerateToken("admin-1", "admin")

	w := postJSON(r, "/admin/professors/import", adminToken, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	r, _ := setupAppRouter(t)
	studentToken, _ := utils.GenerateToken("student-1", "student")

	w := getWithToken(r, "/admin/stats", studentToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminStats(t *testing.T) {
	r, db := setupAppRouter(t)
	seedProfessors(db)
	adminToken, _ := utils.GenerateToken("admin-1", "admin")

	w := getWithToken(r, "/admin/stats", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]int64 `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 5, resp.Data["professors"])
	assert.EqualValues(t, 0, resp.Data["chats"])
}
