package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*

Post is a piece of user generated content

Id: primary key, use to identify a post
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

Title: post's title in plain text
Description: post's body in plain text
Steps: ordered list of step strings, stored as a JSON array
MainImage: cover image url, already uploaded by the excluded media layer

AuthorID:
Author: user who created this post, "belongs-to" relation

TotalLike: number of users in the like set, kept equal to len(Likes)
TotalComment: number of comments, incremented/decremented on comment
	creation/deletion
TotalView: number of times the post detail was opened

Comments: comments on this post, "has-many" relation
Likes: users who liked this post, "many-to-many" relation through post_likes

The three Total* counters are read by the newsfeed scoring and must never go
negative.
*/

type Post struct {
	Id           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt
	Title        string
	Description  string
	Steps        datatypes.JSON
	MainImage    string
	AuthorID     string     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Author       User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TotalLike    int        `gorm:"default:0"`
	TotalComment int        `gorm:"default:0"`
	TotalView    int        `gorm:"default:0"`
	Comments     []*Comment `json:"comments"`
	Likes        []*User    `json:"likes" gorm:"many2many:post_likes;"`
}
