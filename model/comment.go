package model

import (
	"time"

	"gorm.io/gorm"
)

/*

Comment is a user's comment on a post

Id: primary key, use to identify a comment
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

Content: comment body in plain text
PostID:
Post: post this comment belongs to, "belongs-to" relation
UserID:
User: comment author, "belongs-to" relation

TotalLike: number of users in the like set, kept equal to len(Likes)
Likes: users who liked this comment, "many-to-many" relation through
	comment_likes

*/

type Comment struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt
	Content   string
	PostID    string `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    string
	User      User
	TotalLike int     `gorm:"default:0"`
	Likes     []*User `json:"likes" gorm:"many2many:comment_likes;"`
}
