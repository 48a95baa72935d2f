package model

import (
	"time"

	"gorm.io/gorm"
)

/*

User is an account that authors posts, follows other users and requests a
ranked newsfeed.

Id: primary key, use to identify a user
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

Username: unique handle used for login and search
Name: display name
AvatarUrl: profile image url
Bio: short self description

TotalFollowers / TotalFollowing: denormalized follow edge counters, updated
by follow/unfollow and recomputable from user_follows.

Followings: users this user follows, "many-to-many" relation through
	user_follows (follower -> followee)
ViewedPosts: posts already surfaced to this user in a newsfeed response,
	"many-to-many" relation through user_post_views. Append only, the newsfeed
	uses it to exclude posts the user has already been shown.
LikedPosts: posts this user liked, "many-to-many" relation through post_likes
FavoritePosts: posts this user bookmarked, "many-to-many" relation

*/

type User struct {
	Id             string `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt
	Username       string `gorm:"uniqueIndex"`
	Name           string
	AvatarUrl      string
	Bio            string
	TotalFollowers int     `gorm:"default:0"`
	TotalFollowing int     `gorm:"default:0"`
	Followings     []*User `json:"followings" gorm:"many2many:user_follows;joinForeignKey:FollowerID;joinReferences:FolloweeID"`
	ViewedPosts    []*Post `json:"viewed_posts" gorm:"many2many:user_post_views;"`
	LikedPosts     []*Post `json:"liked_posts" gorm:"many2many:post_likes;"`
	FavoritePosts  []*Post `json:"favorite_posts" gorm:"many2many:user_post_favorites;"`
}
