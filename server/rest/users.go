package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/socialmux/socialmux/model"
	. "github.com/socialmux/socialmux/utils/log"
)

type UpsertUserInput struct {
	Username  string `json:"username" binding:"required"`
	Name      string `json:"name"`
	AvatarUrl string `json:"avatarUrl"`
	Bio       string `json:"bio"`
}

// UpsertUser handles POST /users. The identity provider owns credentials,
// this endpoint only materializes the authenticated subject as a row on
// first login and updates profile fields afterwards.
func (h *Handler) UpsertUser(c *gin.Context) {
	var input UpsertUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	userId := c.Request.Header.Get("sub")

	var user model.User
	res := h.DB.Model(&model.User{}).Where("id = ?", userId).First(&user)
	if res.RowsAffected == 0 {
		user = model.User{
			Id:        userId,
			CreatedAt: time.Now(),
			Username:  input.Username,
			Name:      input.Name,
			AvatarUrl: input.AvatarUrl,
			Bio:       input.Bio,
		}
		if user.AvatarUrl == "" {
			// Default avatar until the user customizes one.
			user.AvatarUrl = "https://robohash.org/" + userId + "?set=set4&size=400x400"
		}
		if err := h.DB.Create(&user).Error; err != nil {
			Log.Errorln("cannot create user: ", err)
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": userProfileResponse(&user)})
		return
	}

	user.Name = input.Name
	user.AvatarUrl = input.AvatarUrl
	user.Bio = input.Bio
	if err := h.DB.Save(&user).Error; err != nil {
		Log.Errorln("cannot update user: ", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userProfileResponse(&user)})
}

// GetUserProfile handles GET /users/:userId.
func (h *Handler) GetUserProfile(c *gin.Context) {
	userId := c.Param("userId")

	var user model.User
	if h.DB.Where("id = ?", userId).First(&user).RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid user found %s", userId))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userProfileResponse(&user)})
}

// FavoritePost handles POST /favorites/:postId.
func (h *Handler) FavoritePost(c *gin.Context) {
	postId := c.Param("postId")
	userId := c.Request.Header.Get("sub")

	var user model.User
	if h.DB.Where("id = ?", userId).First(&user).RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid user found %s", userId))
		return
	}
	var post model.Post
	if h.DB.Where("id = ?", postId).First(&post).RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid post found %s", postId))
		return
	}

	if err := h.DB.Model(&user).Association("FavoritePosts").Append(&post); err != nil {
		Log.Errorln("cannot favorite post: ", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post favorited"})
}

// UnfavoritePost handles DELETE /favorites/:postId.
func (h *Handler) UnfavoritePost(c *gin.Context) {
	postId := c.Param("postId")
	userId := c.Request.Header.Get("sub")

	var user model.User
	if h.DB.Where("id = ?", userId).First(&user).RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid user found %s", userId))
		return
	}

	if err := h.DB.Model(&user).Association("FavoritePosts").Delete(&model.Post{Id: postId}); err != nil {
		Log.Errorln("cannot unfavorite post: ", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post unfavorited"})
}

// GetFavorites handles GET /favorites.
func (h *Handler) GetFavorites(c *gin.Context) {
	userId := c.Request.Header.Get("sub")

	var user model.User
	if h.DB.Preload("FavoritePosts").Preload("FavoritePosts.Author").Where("id = ?", userId).First(&user).RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid user found %s", userId))
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": litePostResponses(user.FavoritePosts)})
}
