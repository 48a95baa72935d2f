package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/socialmux/socialmux/events"
	"github.com/socialmux/socialmux/model"
	. "github.com/socialmux/socialmux/utils/log"
	"gorm.io/gorm"
)

// publishEngagement pushes an engagement event onto the bus, fire and forget.
func (h *Handler) publishEngagement(event *events.EngagementEvent) {
	if h.EventBus == nil {
		return
	}
	if err := events.PublishEngagement(h.EventBus, event); err != nil {
		Log.Errorln("cannot publish engagement event: ", err)
	}
}

// LikePost handles POST /like/:postId. Double likes are rejected and
// total_like tracks the like set size.
func (h *Handler) LikePost(c *gin.Context) {
	postId := c.Param("postId")
	userId := c.Request.Header.Get("sub")

	var post model.Post
	queryResult := h.DB.Preload("Author").Where("id = ?", postId).First(&post)
	if queryResult.RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid post found %s", postId))
		return
	}

	var existing model.PostLike
	if h.DB.Where("post_id = ? AND user_id = ?", postId, userId).First(&existing).RowsAffected == 1 {
		abortWithError(c, errors.Wrap(ErrBadRequest, "post already liked"))
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.PostLike{PostID: postId, UserID: userId, CreatedAt: time.Now()}).Error; err != nil {
			return err
		}
		return tx.Model(&post).UpdateColumn("total_like", gorm.Expr("total_like + 1")).Error
	})
	if err != nil {
		Log.Errorln("cannot like post: ", err)
		abortWithError(c, err)
		return
	}
	post.TotalLike += 1

	var actor model.User
	if h.DB.Where("id = ?", userId).First(&actor).RowsAffected == 1 {
		h.publishEngagement(&events.EngagementEvent{
			Type:        model.NotificationTypePostLike,
			RecipientID: post.AuthorID,
			ActorID:     actor.Id,
			ActorName:   actor.Name,
			ActorAvatar: actor.AvatarUrl,
			PostID:      &post.Id,
			Detail:      post.Title,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "post liked", "totalLike": post.TotalLike})
}

// UnlikePost handles DELETE /like/:postId.
func (h *Handler) UnlikePost(c *gin.Context) {
	postId := c.Param("postId")
	userId := c.Request.Header.Get("sub")

	var post model.Post
	queryResult := h.DB.Where("id = ?", postId).First(&post)
	if queryResult.RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid post found %s", postId))
		return
	}

	var like model.PostLike
	if h.DB.Where("post_id = ? AND user_id = ?", postId, userId).First(&like).RowsAffected != 1 {
		abortWithError(c, errors.Wrap(ErrBadRequest, "post not liked yet"))
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ? AND user_id = ?", postId, userId).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Model(&post).UpdateColumn("total_like", gorm.Expr("total_like - 1")).Error
	})
	if err != nil {
		Log.Errorln("cannot unlike post: ", err)
		abortWithError(c, err)
		return
	}
	post.TotalLike -= 1

	c.JSON(http.StatusOK, gin.H{"message": "post unliked", "totalLike": post.TotalLike})
}

// CheckPostLike handles GET /like/check/:postId.
func (h *Handler) CheckPostLike(c *gin.Context) {
	postId := c.Param("postId")
	userId := c.Request.Header.Get("sub")

	var post model.Post
	if h.DB.Where("id = ?", postId).First(&post).RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid post found %s", postId))
		return
	}

	var like model.PostLike
	liked := h.DB.Where("post_id = ? AND user_id = ?", postId, userId).First(&like).RowsAffected == 1
	c.JSON(http.StatusOK, gin.H{"isLiked": liked})
}

// GetPostLikers handles GET /like/:postId/:page, a paginated listing of the
// users who liked a post.
func (h *Handler) GetPostLikers(c *gin.Context) {
	postId := c.Param("postId")
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "page must be a positive integer"})
		return
	}

	var post model.Post
	queryResult := h.DB.Preload("Likes").Where("id = ?", postId).First(&post)
	if queryResult.RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid post found %s", postId))
		return
	}

	start, end, nextPage := paginate(len(post.Likes), page)
	likers := []UserResponse{}
	for _, liker := range post.Likes[start:end] {
		likers = append(likers, userResponse(liker))
	}

	c.JSON(http.StatusOK, gin.H{"nextPage": nextPage, "likes": likers})
}
