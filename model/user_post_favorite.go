package model

import (
	"time"

	"gorm.io/gorm"
)

/*

UserPostFavorite is a "many-to-many" relation of a user bookmarking a post

UserID: user id
PostID: post id
CreatedAt: time when relation is created

*/

type UserPostFavorite struct {
	UserID    string `gorm:"primaryKey"`
	PostID    string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (UserPostFavorite) BeforeCreate(db *gorm.DB) error {
	return nil
}
