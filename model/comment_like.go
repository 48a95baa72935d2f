package model

import (
	"time"

	"gorm.io/gorm"
)

/*

CommentLike is a "many-to-many" relation of a user liking a comment

CommentID: comment id
UserID: user id
CreatedAt: time when relation is created

*/

type CommentLike struct {
	CommentID string `gorm:"primaryKey"`
	UserID    string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (CommentLike) BeforeCreate(db *gorm.DB) error {
	return nil
}
