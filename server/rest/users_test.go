package rest

import (
	"net/http"
	"testing"

	"github.com/socialmux/socialmux/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertUser(t *testing.T) {
	h, _ := newTestHandler(t)
	router := newTestRouter(h)

	var created struct {
		User UserProfileResponse `json:"user"`
	}
	w := performRequest(t, router, "POST", "/users", "u1", UpsertUserInput{Username: "chef"}, &created)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", created.User.Id)
	assert.Equal(t, "chef", created.User.Username)
	// First login gets a default avatar.
	assert.NotEmpty(t, created.User.AvatarUrl)

	var updated struct {
		User UserProfileResponse `json:"user"`
	}
	w = performRequest(t, router, "POST", "/users", "u1", UpsertUserInput{
		Username:  "chef",
		Name:      "The Chef",
		AvatarUrl: "https://example.com/chef.png",
		Bio:       "I cook",
	}, &updated)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "The Chef", updated.User.Name)
	assert.Equal(t, "I cook", updated.User.Bio)
}

func TestGetUserProfile(t *testing.T) {
	h, db := newTestHandler(t)
	router := newTestRouter(h)

	utils.TestCreateUser(t, db, "u1", "viewer")
	utils.TestCreateUser(t, db, "u2", "target")
	utils.TestCreateFollow(t, db, "u1", "u2")

	var resp struct {
		User UserProfileResponse `json:"user"`
	}
	w := performRequest(t, router, "GET", "/users/u2", "u1", nil, &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "target", resp.User.Username)
	assert.Equal(t, 1, resp.User.TotalFollowers)

	w = performRequest(t, router, "GET", "/users/ghost", "u1", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavorites(t *testing.T) {
	h, db := newTestHandler(t)
	router := newTestRouter(h)

	utils.TestCreateUser(t, db, "u1", "collector")
	utils.TestCreateUser(t, db, "u2", "author")
	utils.TestCreatePost(t, db, "p1", "u2", 0, 0, 0)

	w := performRequest(t, router, "POST", "/favorites/p1", "u1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var favorites struct {
		Posts []*LitePostResponse `json:"posts"`
	}
	w = performRequest(t, router, "GET", "/favorites", "u1", nil, &favorites)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, len(favorites.Posts))
	assert.Equal(t, "p1", favorites.Posts[0].Id)
	assert.Equal(t, "author", favorites.Posts[0].Author.Username)

	w = performRequest(t, router, "DELETE", "/favorites/p1", "u1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, router, "GET", "/favorites", "u1", nil, &favorites)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, len(favorites.Posts))
}
