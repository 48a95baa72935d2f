package model

import (
	"time"

	"gorm.io/gorm"
)

// Notification type constants. The recorder only persists rows, delivery to
// devices is handled outside this service.
const (
	NotificationTypePostLike    = "NEW_POST_LIKE"
	NotificationTypePostComment = "NEW_POST_COMMENT"
	NotificationTypeCommentLike = "NEW_COMMENT_LIKE"
	NotificationTypeFollower    = "NEW_FOLLOWER"
)

/*

Notification is a persisted in-app notification

Id: primary key, use to identify a notification
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

UserID: recipient user
Type: one of the NotificationType* constants
ActorID: user who triggered the notification
ActorName / ActorAvatar: denormalized actor display fields at trigger time
PostID: subject post if any
Detail: free form text, e.g. the comment content or like count
Read: whether the recipient has opened the notification

*/

type Notification struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	DeletedAt   gorm.DeletedAt
	UserID      string `gorm:"index"`
	Type        string
	ActorID     string
	ActorName   string
	ActorAvatar string
	PostID      *string
	Detail      string
	Read        bool `gorm:"default:false"`
}
