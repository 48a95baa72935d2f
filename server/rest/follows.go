package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/socialmux/socialmux/events"
	"github.com/socialmux/socialmux/model"
	. "github.com/socialmux/socialmux/utils/log"
	"gorm.io/gorm"
)

// FollowUser handles POST /follow/:userId. Rejects self follows and double
// follows, and keeps the denormalized follower counters in step with the
// edge insert.
func (h *Handler) FollowUser(c *gin.Context) {
	targetId := c.Param("userId")
	userId := c.Request.Header.Get("sub")

	if targetId == userId {
		abortWithError(c, errors.Wrap(ErrBadRequest, "cannot follow yourself"))
		return
	}

	var follower, target model.User
	if h.DB.Where("id = ?", userId).First(&follower).RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid user found %s", userId))
		return
	}
	if h.DB.Where("id = ?", targetId).First(&target).RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid user found %s", targetId))
		return
	}

	var existing model.UserFollow
	if h.DB.Where("follower_id = ? AND followee_id = ?", userId, targetId).First(&existing).RowsAffected == 1 {
		abortWithError(c, errors.Wrap(ErrBadRequest, "user already followed"))
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.UserFollow{FollowerID: userId, FolloweeID: targetId, CreatedAt: time.Now()}).Error; err != nil {
			return err
		}
		if err := tx.Model(&follower).UpdateColumn("total_following", gorm.Expr("total_following + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&target).UpdateColumn("total_followers", gorm.Expr("total_followers + 1")).Error
	})
	if err != nil {
		Log.Errorln("cannot follow user: ", err)
		abortWithError(c, err)
		return
	}

	h.publishEngagement(&events.EngagementEvent{
		Type:        model.NotificationTypeFollower,
		RecipientID: target.Id,
		ActorID:     follower.Id,
		ActorName:   follower.Name,
		ActorAvatar: follower.AvatarUrl,
	})

	c.JSON(http.StatusOK, gin.H{"message": "user followed"})
}

// UnfollowUser handles DELETE /follow/:userId.
func (h *Handler) UnfollowUser(c *gin.Context) {
	targetId := c.Param("userId")
	userId := c.Request.Header.Get("sub")

	var follow model.UserFollow
	if h.DB.Where("follower_id = ? AND followee_id = ?", userId, targetId).First(&follow).RowsAffected != 1 {
		abortWithError(c, errors.Wrap(ErrBadRequest, "user not followed yet"))
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("follower_id = ? AND followee_id = ?", userId, targetId).Delete(&model.UserFollow{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.User{}).Where("id = ?", userId).
			UpdateColumn("total_following", gorm.Expr("total_following - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).Where("id = ?", targetId).
			UpdateColumn("total_followers", gorm.Expr("total_followers - 1")).Error
	})
	if err != nil {
		Log.Errorln("cannot unfollow user: ", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user unfollowed"})
}

// GetFollowers handles GET /follow/followers/:userId.
func (h *Handler) GetFollowers(c *gin.Context) {
	targetId := c.Param("userId")

	var target model.User
	if h.DB.Where("id = ?", targetId).First(&target).RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid user found %s", targetId))
		return
	}

	var followers []*model.User
	if err := h.DB.Model(&model.User{}).
		Joins("INNER JOIN user_follows ON user_follows.follower_id = users.id").
		Where("user_follows.followee_id = ?", targetId).
		Find(&followers).Error; err != nil {
		Log.Errorln("cannot read followers: ", err)
		abortWithError(c, err)
		return
	}

	resps := []UserResponse{}
	for _, follower := range followers {
		resps = append(resps, userResponse(follower))
	}
	c.JSON(http.StatusOK, gin.H{"followers": resps})
}

// GetFollowing handles GET /follow/following/:userId.
func (h *Handler) GetFollowing(c *gin.Context) {
	targetId := c.Param("userId")

	var target model.User
	if h.DB.Where("id = ?", targetId).First(&target).RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid user found %s", targetId))
		return
	}

	var followees []*model.User
	if err := h.DB.Model(&model.User{}).
		Joins("INNER JOIN user_follows ON user_follows.followee_id = users.id").
		Where("user_follows.follower_id = ?", targetId).
		Find(&followees).Error; err != nil {
		Log.Errorln("cannot read followees: ", err)
		abortWithError(c, err)
		return
	}

	resps := []UserResponse{}
	for _, followee := range followees {
		resps = append(resps, userResponse(followee))
	}
	c.JSON(http.StatusOK, gin.H{"following": resps})
}

// CheckFollow handles GET /follow/check/:userId.
func (h *Handler) CheckFollow(c *gin.Context) {
	targetId := c.Param("userId")
	userId := c.Request.Header.Get("sub")

	var follow model.UserFollow
	followed := h.DB.Where("follower_id = ? AND followee_id = ?", userId, targetId).First(&follow).RowsAffected == 1
	c.JSON(http.StatusOK, gin.H{"isFollowed": followed})
}

// ReconcileFollowCounters handles POST /follow/reconcile and recomputes
// every user's follower/following counters from the edges. Admin use, after
// a counter drifted.
func (h *Handler) ReconcileFollowCounters(c *gin.Context) {
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`UPDATE users SET total_followers = (
			SELECT COUNT(*) FROM user_follows WHERE user_follows.followee_id = users.id
		)`).Error; err != nil {
			return err
		}
		return tx.Exec(`UPDATE users SET total_following = (
			SELECT COUNT(*) FROM user_follows WHERE user_follows.follower_id = users.id
		)`).Error
	})
	if err != nil {
		Log.Errorln("cannot reconcile follow counters: ", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "follow counters reconciled"})
}
