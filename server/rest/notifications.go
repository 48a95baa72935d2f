package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/socialmux/socialmux/model"
	. "github.com/socialmux/socialmux/utils/log"
)

type MarkNotificationsReadInput struct {
	// Ids of the notifications to mark. Empty means all of the caller's.
	Ids []string `json:"ids"`
}

// GetNotifications handles GET /notifications/:page, newest first.
func (h *Handler) GetNotifications(c *gin.Context) {
	userId := c.Request.Header.Get("sub")
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "page must be a positive integer"})
		return
	}

	var notifications []*model.Notification
	if err := h.DB.Where("user_id = ?", userId).
		Order("created_at desc").
		Find(&notifications).Error; err != nil {
		Log.Errorln("cannot read notifications: ", err)
		abortWithError(c, err)
		return
	}

	start, end, nextPage := paginate(len(notifications), page)
	resps := []*NotificationResponse{}
	for _, notification := range notifications[start:end] {
		resps = append(resps, notificationResponse(notification))
	}

	c.JSON(http.StatusOK, gin.H{"nextPage": nextPage, "notifications": resps})
}

// MarkNotificationsRead handles POST /notifications/read.
func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	var input MarkNotificationsReadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	userId := c.Request.Header.Get("sub")

	query := h.DB.Model(&model.Notification{}).Where("user_id = ?", userId)
	if len(input.Ids) > 0 {
		query = query.Where("id IN ?", input.Ids)
	}
	if err := query.Update("read", true).Error; err != nil {
		Log.Errorln("cannot mark notifications read: ", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notifications marked read"})
}
