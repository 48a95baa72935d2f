package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/socialmux/socialmux/model"
	. "github.com/socialmux/socialmux/utils/log"
)

const searchResultCap = 10

// SearchAll handles GET /search/all/:query, a combined lookup over posts and
// users capped at 10 results each.
func (h *Handler) SearchAll(c *gin.Context) {
	query := "%" + c.Param("query") + "%"

	var posts []*model.Post
	if err := h.DB.Preload("Author").
		Where("title ILIKE ? OR description ILIKE ?", query, query).
		Limit(searchResultCap).
		Find(&posts).Error; err != nil {
		Log.Errorln("cannot search posts: ", err)
		abortWithError(c, err)
		return
	}

	var users []*model.User
	if err := h.DB.
		Where("username ILIKE ? OR name ILIKE ?", query, query).
		Limit(searchResultCap).
		Find(&users).Error; err != nil {
		Log.Errorln("cannot search users: ", err)
		abortWithError(c, err)
		return
	}

	profiles := []UserProfileResponse{}
	for _, user := range users {
		profiles = append(profiles, userProfileResponse(user))
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": litePostResponses(posts),
		"users": profiles,
	})
}

// SearchPosts handles GET /search/post/:query/:page.
func (h *Handler) SearchPosts(c *gin.Context) {
	query := "%" + c.Param("query") + "%"
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "page must be a positive integer"})
		return
	}

	var posts []*model.Post
	if err := h.DB.Preload("Author").
		Where("title ILIKE ? OR description ILIKE ?", query, query).
		Find(&posts).Error; err != nil {
		Log.Errorln("cannot search posts: ", err)
		abortWithError(c, err)
		return
	}

	start, end, nextPage := paginate(len(posts), page)
	c.JSON(http.StatusOK, gin.H{"nextPage": nextPage, "posts": litePostResponses(posts[start:end])})
}
