package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/socialmux/socialmux/events"
	"github.com/socialmux/socialmux/model"
	. "github.com/socialmux/socialmux/utils/log"
	"gorm.io/gorm"
)

type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

// CreateComment handles POST /comment/:postId and bumps the post's comment
// counter in the same transaction.
func (h *Handler) CreateComment(c *gin.Context) {
	var input CommentInput
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

	var user model.User
	if h.DB.Where("id = ?", userId).First(&user).RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid user found %s", userId))
		return
	}

	comment := model.Comment{
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		Content:   input.Content,
		PostID:    post.Id,
		UserID:    user.Id,
		User:      user,
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&post).UpdateColumn("total_comment", gorm.Expr("total_comment + 1")).Error
	})
	if err != nil {
		Log.Errorln("cannot create comment: ", err)
		abortWithError(c, err)
		return
	}

	h.publishEngagement(&events.EngagementEvent{
		Type:        model.NotificationTypePostComment,
		RecipientID: post.AuthorID,
		ActorID:     user.Id,
		ActorName:   user.Name,
		ActorAvatar: user.AvatarUrl,
		PostID:      &post.Id,
		Detail:      input.Content,
	})

	c.JSON(http.StatusOK, gin.H{"comment": commentResponse(&comment, userId)})
}

// UpdateComment handles PUT /comment/:commentId. Only the owner may update.
func (h *Handler) UpdateComment(c *gin.Context) {
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	commentId := c.Param("commentId")
	userId := c.Request.Header.Get("sub")

	var comment model.Comment
	queryResult := h.DB.Preload("User").Where("id = ?", commentId).First(&comment)
	if queryResult.RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid comment found %s", commentId))
		return
	}
	if comment.UserID != userId {
		abortWithError(c, errors.Wrap(ErrForbidden, "only the owner can update a comment"))
		return
	}

	comment.Content = input.Content
	if err := h.DB.Save(&comment).Error; err != nil {
		Log.Errorln("cannot update comment: ", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": commentResponse(&comment, userId)})
}

// DeleteComment handles DELETE /comment/:commentId and decrements the post's
// comment counter.
func (h *Handler) DeleteComment(c *gin.Context) {
	commentId := c.Param("commentId")
	userId := c.Request.Header.Get("sub")

	var comment model.Comment
	queryResult := h.DB.Where("id = ?", commentId).First(&comment)
	if queryResult.RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid comment found %s", commentId))
		return
	}
	if comment.UserID != userId {
		abortWithError(c, errors.Wrap(ErrForbidden, "only the owner can delete a comment"))
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("total_comment", gorm.Expr("total_comment - 1")).Error
	})
	if err != nil {
		Log.Errorln("cannot delete comment: ", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// GetComments handles GET /comment/:postId/:page, newest first with a
// per-viewer isLiked flag.
func (h *Handler) GetComments(c *gin.Context) {
	postId := c.Param("postId")
	userId := c.Request.Header.Get("sub")
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "page must be a positive integer"})
		return
	}

	var comments []*model.Comment
	if err := h.DB.Preload("User").Preload("Likes").
		Where("post_id = ?", postId).
		Order("created_at desc").
		Find(&comments).Error; err != nil {
		Log.Errorln("cannot read comments: ", err)
		abortWithError(c, err)
		return
	}

	start, end, nextPage := paginate(len(comments), page)
	resps := []*CommentResponse{}
	for _, comment := range comments[start:end] {
		resps = append(resps, commentResponse(comment, userId))
	}

	c.JSON(http.StatusOK, gin.H{"nextPage": nextPage, "comments": resps})
}

// LikeComment handles POST /comment/like/:commentId.
func (h *Handler) LikeComment(c *gin.Context) {
	commentId := c.Param("commentId")
	userId := c.Request.Header.Get("sub")

	var comment model.Comment
	queryResult := h.DB.Preload("User").Where("id = ?", commentId).First(&comment)
	if queryResult.RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid comment found %s", commentId))
		return
	}

	var existing model.CommentLike
	if h.DB.Where("comment_id = ? AND user_id = ?", commentId, userId).First(&existing).RowsAffected == 1 {
		abortWithError(c, errors.Wrap(ErrBadRequest, "comment already liked"))
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.CommentLike{CommentID: commentId, UserID: userId, CreatedAt: time.Now()}).Error; err != nil {
			return err
		}
		return tx.Model(&comment).UpdateColumn("total_like", gorm.Expr("total_like + 1")).Error
	})
	if err != nil {
		Log.Errorln("cannot like comment: ", err)
		abortWithError(c, err)
		return
	}

	var actor model.User
	if h.DB.Where("id = ?", userId).First(&actor).RowsAffected == 1 {
		h.publishEngagement(&events.EngagementEvent{
			Type:        model.NotificationTypeCommentLike,
			RecipientID: comment.UserID,
			ActorID:     actor.Id,
			ActorName:   actor.Name,
			ActorAvatar: actor.AvatarUrl,
			PostID:      &comment.PostID,
			Detail:      comment.Content,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment liked"})
}

// UnlikeComment handles DELETE /comment/like/:commentId.
func (h *Handler) UnlikeComment(c *gin.Context) {
	commentId := c.Param("commentId")
	userId := c.Request.Header.Get("sub")

	var comment model.Comment
	queryResult := h.DB.Where("id = ?", commentId).First(&comment)
	if queryResult.RowsAffected != 1 {
		abortWithError(c, errors.Wrapf(ErrNotFound, "no valid comment found %s", commentId))
		return
	}

	var like model.CommentLike
	if h.DB.Where("comment_id = ? AND user_id = ?", commentId, userId).First(&like).RowsAffected != 1 {
		abortWithError(c, errors.Wrap(ErrBadRequest, "comment not liked yet"))
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ? AND user_id = ?", commentId, userId).Delete(&model.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Model(&comment).UpdateColumn("total_like", gorm.Expr("total_like - 1")).Error
	})
	if err != nil {
		Log.Errorln("cannot unlike comment: ", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment unliked"})
}
