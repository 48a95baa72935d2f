package model

import (
	"time"

	"gorm.io/gorm"
)

/*

UserPostView is a "many-to-many" relation of a post having been surfaced to a
user in a newsfeed response

UserID: user id
PostID: post id
CreatedAt: time when relation is created

The relation is append only. A user's own posts are never recorded here so
that their commented posts stay eligible for the newsfeed.

*/

type UserPostView struct {
	UserID    string `gorm:"primaryKey"`
	PostID    string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (UserPostView) BeforeCreate(db *gorm.DB) error {
	return nil
}
