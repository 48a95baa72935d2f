package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/socialmux/socialmux/model"
	. "github.com/socialmux/socialmux/utils/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
	MainImage   string   `json:"mainImage"`
}

// CreatePost handles POST /posts.
func (h *Handler) CreatePost(c *gin.Context) {
	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	userId := c.Request.Header.Get("sub")

	var author model.User
	queryResult := h.DB.Where("id = ?", userId).First(&author)
	if queryResult.RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid user found %s", userId))
		return
	}

	steps, _ := json.Marshal(input.Steps)
	post := model.Post{
		Id:          uuid.New().String(),
		CreatedAt:   time.Now(),
		Title:       input.Title,
		Description: input.Description,
		Steps:       datatypes.JSON(steps),
		MainImage:   input.MainImage,
		Author:      author,
		AuthorID:    author.Id,
	}
	if err := h.DB.Create(&post).Error; err != nil {
		Log.Errorln("cannot create post: ", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": fullPostResponse(&post)})
}

// UpdatePost handles PUT /posts/:postId. Only the author may update.
func (h *Handler) UpdatePost(c *gin.Context) {
	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	postId := c.Param("postId")
	userId := c.Request.Header.Get("sub")

	var post model.Post
	queryResult := h.DB.Preload("Author").Where("id = ?", postId).First(&post)
	if queryResult.RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid post found %s", postId))
		return
	}
	if post.AuthorID != userId {
		abortWithError(c, errors.Wrap(ErrForbidden, "only the author can update a post"))
		return
	}

	steps, _ := json.Marshal(input.Steps)
	post.Title = input.Title
	post.Description = input.Description
	post.Steps = datatypes.JSON(steps)
	post.MainImage = input.MainImage
	if err := h.DB.Save(&post).Error; err != nil {
		Log.Errorln("cannot update post: ", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": fullPostResponse(&post)})
}

// DeletePost handles DELETE /posts/:postId. Only the author may delete.
func (h *Handler) DeletePost(c *gin.Context) {
	postId := c.Param("postId")
	userId := c.Request.Header.Get("sub")

	var post model.Post
	queryResult := h.DB.Where("id = ?", postId).First(&post)
	if queryResult.RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid post found %s", postId))
		return
	}
	if post.AuthorID != userId {
		abortWithError(c, errors.Wrap(ErrForbidden, "only the author can delete a post"))
		return
	}

	if err := h.DB.Delete(&post).Error; err != nil {
		Log.Errorln("cannot delete post: ", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// GetPost handles GET /posts/:postId. Opening a post counts one view and
// marks the post read for the viewer.
func (h *Handler) GetPost(c *gin.Context) {
	postId := c.Param("postId")
	userId := c.Request.Header.Get("sub")

	var post model.Post
	queryResult := h.DB.Preload("Author").Where("id = ?", postId).First(&post)
	if queryResult.RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid post found %s", postId))
		return
	}

	post.TotalView += 1
	h.DB.Model(&post).UpdateColumn("total_view", gorm.Expr("total_view + 1"))

	if h.StatusStore != nil {
		if err := h.StatusStore.SetPostsReadStatus([]string{post.Id}, userId, true); err != nil {
			Log.Infoln("cannot mark post as read: ", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"post": fullPostResponse(&post)})
}

// GetPostsByAuthor handles GET /profile/posts/:userId.
func (h *Handler) GetPostsByAuthor(c *gin.Context) {
	authorId := c.Param("userId")

	var posts []*model.Post
	if err := h.DB.Preload("Author").Where("author_id = ?", authorId).Order("created_at desc").Find(&posts).Error; err != nil {
		Log.Errorln("cannot read posts by author: ", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": litePostResponses(posts)})
}
