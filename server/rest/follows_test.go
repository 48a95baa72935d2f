package rest

import (
	"net/http"
	"testing"

	"github.com/socialmux/socialmux/model"
	"github.com/socialmux/socialmux/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowAndUnfollow(t *testing.T) {
	h, db := newTestHandler(t)
	router := newTestRouter(h)

	utils.TestCreateUser(t, db, "u1", "follower")
	utils.TestCreateUser(t, db, "u2", "followee")

	w := performRequest(t, router, "POST", "/follow/u2", "u1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var follower, followee model.User
	require.Equal(t, int64(1), db.Where("id = ?", "u1").First(&follower).RowsAffected)
	require.Equal(t, int64(1), db.Where("id = ?", "u2").First(&followee).RowsAffected)
	assert.Equal(t, 1, follower.TotalFollowing)
	assert.Equal(t, 1, followee.TotalFollowers)

	// Double follows are rejected.
	w = performRequest(t, router, "POST", "/follow/u2", "u1", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var check struct {
		IsFollowed bool `json:"isFollowed"`
	}
	w = performRequest(t, router, "GET", "/follow/check/u2", "u1", nil, &check)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, check.IsFollowed)

	w = performRequest(t, router, "DELETE", "/follow/u2", "u1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, int64(1), db.Where("id = ?", "u1").First(&follower).RowsAffected)
	require.Equal(t, int64(1), db.Where("id = ?", "u2").First(&followee).RowsAffected)
	assert.Equal(t, 0, follower.TotalFollowing)
	assert.Equal(t, 0, followee.TotalFollowers)

	w = performRequest(t, router, "DELETE", "/follow/u2", "u1", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowUser_Rejections(t *testing.T) {
	h, db := newTestHandler(t)
	router := newTestRouter(h)

	utils.TestCreateUser(t, db, "u1", "follower")

	w := performRequest(t, router, "POST", "/follow/u1", "u1", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, router, "POST", "/follow/ghost", "u1", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetFollowersAndFollowing(t *testing.T) {
	h, db := newTestHandler(t)
	router := newTestRouter(h)

	utils.TestCreateUser(t, db, "u1", "alpha")
	utils.TestCreateUser(t, db, "u2", "bravo")
	utils.TestCreateUser(t, db, "u3", "charlie")
	utils.TestCreateFollow(t, db, "u1", "u3")
	utils.TestCreateFollow(t, db, "u2", "u3")

	var followers struct {
		Followers []UserResponse `json:"followers"`
	}
	w := performRequest(t, router, "GET", "/follow/followers/u3", "u1", nil, &followers)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, len(followers.Followers))

	var following struct {
		Following []UserResponse `json:"following"`
	}
	w = performRequest(t, router, "GET", "/follow/following/u1", "u1", nil, &following)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, len(following.Following))
	assert.Equal(t, "u3", following.Following[0].Id)
}

func TestReconcileFollowCounters(t *testing.T) {
	h, db := newTestHandler(t)
	router := newTestRouter(h)

	utils.TestCreateUser(t, db, "u1", "follower")
	utils.TestCreateUser(t, db, "u2", "followee")
	utils.TestCreateFollow(t, db, "u1", "u2")

	// Drift the counters away from the edges.
	require.Nil(t, db.Model(&model.User{}).Where("id = ?", "u2").UpdateColumn("total_followers", 42).Error)
	require.Nil(t, db.Model(&model.User{}).Where("id = ?", "u1").UpdateColumn("total_following", 0).Error)

	w := performRequest(t, router, "POST", "/follow/reconcile", "u1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var follower, followee model.User
	require.Equal(t, int64(1), db.Where("id = ?", "u1").First(&follower).RowsAffected)
	require.Equal(t, int64(1), db.Where("id = ?", "u2").First(&followee).RowsAffected)
	assert.Equal(t, 1, follower.TotalFollowing)
	assert.Equal(t, 1, followee.TotalFollowers)
}
