package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acadmatch/academic-matchmaker/models"
	"github.com/acadmatch/academic-matchmaker/utils"
)

type PostController struct {
	DB *gorm.DB
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{DB: db}
}

// GetAllPosts -> feed, newest first
func (pc *PostController) GetAllPosts(c *gin.Context) {
	var posts []models.Post
	if err := pc.DB.Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All posts", posts)
}

// CreatePost
func (pc *PostController) CreatePost(c *gin.Context) {
	var body struct {
		Content    string `json:"content" binding:"required"`
		AuthorName string `json:"author_name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	post := models.Post{
		ID:         uuid.NewString(),
		AuthorID:   c.GetString("user_id"),
		AuthorName: body.AuthorName,
		AuthorRole: c.GetString("role"),
		Content:    body.Content,
	}
	if err := pc.DB.Create(&post).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Post created", post)
}

// DeletePost -> author or admin only
func (pc *PostController) DeletePost(c *gin.Context) {
	id := c.Param("post_id")

	var post models.Post
	if err := pc.DB.First(&post, "id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if post.AuthorID != c.GetString("user_id") && c.GetString("role") != "admin" {
		utils.RespondError(c, http.StatusForbidden, errors.New("only the author can delete this post"))
		return
	}

	if err := pc.DB.Delete(&post).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Post deleted", gin.H{"post_id": id})
}
