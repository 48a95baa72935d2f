package model

import (
	"time"

	"gorm.io/gorm"
)

/*

UserFollow is a "many-to-many" relation of one user following another

FollowerID: user who follows
FolloweeID: user being followed
CreatedAt: time when relation is created

*/

type UserFollow struct {
	FollowerID string `gorm:"primaryKey"`
	FolloweeID string `gorm:"primaryKey"`
	CreatedAt  time.Time
}

func (UserFollow) BeforeCreate(db *gorm.DB) error {
	return nil
}
