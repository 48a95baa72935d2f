package model

import (
	"time"

	"gorm.io/gorm"
)

/*

PostLike is a "many-to-many" relation of a user liking a post

PostID: post id
UserID: user id
CreatedAt: time when relation is created

*/

type PostLike struct {
	PostID    string `gorm:"primaryKey"`
	UserID    string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (PostLike) BeforeCreate(db *gorm.DB) error {
	return nil
}
