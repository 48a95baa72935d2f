package utils

import (
	"testing"
	"time"

	"github.com/socialmux/socialmux/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// create a user row directly, do sanity checks and return it
func TestCreateUser(t *testing.T, db *gorm.DB, id string, username string) *model.User {
	t.Helper()
	user := model.User{
		Id:        id,
		CreatedAt: time.Now(),
		Username:  username,
		Name:      username,
		AvatarUrl: "https://example.com/" + username + ".png",
	}
	require.Nil(t, db.Create(&user).Error)
	return &user
}

// create a post row with the given engagement counters, do sanity checks and
// return it
func TestCreatePost(t *testing.T, db *gorm.DB, id string, authorId string, likes int, comments int, views int) *model.Post {
	t.Helper()
	post := model.Post{
		Id:           id,
		CreatedAt:    time.Now(),
		Title:        "post " + id,
		Description:  "description of " + id,
		AuthorID:     authorId,
		TotalLike:    likes,
		TotalComment: comments,
		TotalView:    views,
	}
	require.Nil(t, db.Create(&post).Error)
	return &post
}

// create a follow edge and keep the denormalized counters in sync, the same
// way the follow endpoint does
func TestCreateFollow(t *testing.T, db *gorm.DB, followerId string, followeeId string) {
	t.Helper()
	require.Nil(t, db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.UserFollow{
			FollowerID: followerId,
			FolloweeID: followeeId,
			CreatedAt:  time.Now(),
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.User{}).Where("id = ?", followerId).
			UpdateColumn("total_following", gorm.Expr("total_following + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).Where("id = ?", followeeId).
			UpdateColumn("total_followers", gorm.Expr("total_followers + 1")).Error
	}))
}

// record posts as already surfaced to the given user
func TestMarkPostsViewed(t *testing.T, db *gorm.DB, userId string, posts ...*model.Post) {
	t.Helper()
	var user model.User
	require.Equal(t, int64(1), db.Where("id = ?", userId).First(&user).RowsAffected)
	require.Nil(t, db.Model(&user).Association("ViewedPosts").Append(posts))
}
