package rest

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/socialmux/socialmux/model"
	"github.com/socialmux/socialmux/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsfeedScore(t *testing.T) {
	viewer := "u1"
	followed := []string{"u2"}

	t.Run("zero engagement scores zero regardless of follow", func(t *testing.T) {
		cold := &model.Post{AuthorID: "u3"}
		assert.Equal(t, 0.0, newsfeedScore(cold, viewer, followed))

		coldFollowed := &model.Post{AuthorID: "u2"}
		assert.Equal(t, 0.0, newsfeedScore(coldFollowed, viewer, followed))
	})

	t.Run("followed author gets exactly a 5x boost", func(t *testing.T) {
		fromFollowed := &model.Post{AuthorID: "u2", TotalLike: 3, TotalComment: 2, TotalView: 16}
		fromStranger := &model.Post{AuthorID: "u3", TotalLike: 3, TotalComment: 2, TotalView: 16}

		boosted := newsfeedScore(fromFollowed, viewer, followed)
		plain := newsfeedScore(fromStranger, viewer, followed)
		assert.Greater(t, boosted, plain)
		assert.InDelta(t, 5*plain, boosted, 1e-9)
	})

	t.Run("own posts always score -1", func(t *testing.T) {
		mine := &model.Post{AuthorID: viewer, TotalComment: 3}
		assert.Equal(t, -1.0, newsfeedScore(mine, viewer, followed))

		minePopular := &model.Post{AuthorID: viewer, TotalLike: 1000, TotalComment: 500, TotalView: 90000}
		assert.Equal(t, -1.0, newsfeedScore(minePopular, viewer, followed))

		// Strictly below even the coldest candidate from someone else.
		cold := &model.Post{AuthorID: "u3"}
		assert.Less(t, newsfeedScore(mine, viewer, followed), newsfeedScore(cold, viewer, followed))
	})

	t.Run("followed author with modest engagement beats popular stranger", func(t *testing.T) {
		p1 := &model.Post{AuthorID: "u2", TotalLike: 4, TotalComment: 0, TotalView: 9}
		p2 := &model.Post{AuthorID: "u3", TotalLike: 10, TotalComment: 0, TotalView: 0}

		s1 := newsfeedScore(p1, viewer, followed)
		s2 := newsfeedScore(p2, viewer, followed)
		// base=sqrt(4+0+sqrt(9))=sqrt(7), boosted 5x
		assert.InDelta(t, 13.23, s1, 0.01)
		assert.InDelta(t, 3.16, s2, 0.01)
		assert.Greater(t, s1, s2)
	})
}

func TestGetNewsfeedPosts_RankedOrder(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	utils.TestCreateUser(t, db, "u1", "viewer")
	utils.TestCreateUser(t, db, "u2", "followed_author")
	utils.TestCreateUser(t, db, "u3", "other_author")
	utils.TestCreateFollow(t, db, "u1", "u2")

	utils.TestCreatePost(t, db, "p1", "u2", 4, 0, 9)
	utils.TestCreatePost(t, db, "p2", "u3", 10, 0, 0)

	posts, err := getNewsfeedPosts(db, "u1", 2)
	require.Nil(t, err)
	require.Equal(t, 2, len(posts))
	assert.Equal(t, "p1", posts[0].Id)
	assert.Equal(t, "p2", posts[1].Id)
}

func TestGetNewsfeedPosts_DoesNotResurfaceViewedPosts(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	utils.TestCreateUser(t, db, "u1", "viewer")
	utils.TestCreateUser(t, db, "u2", "author")
	utils.TestCreatePost(t, db, "p1", "u2", 1, 0, 0)
	utils.TestCreatePost(t, db, "p2", "u2", 2, 0, 0)

	first, err := getNewsfeedPosts(db, "u1", 10)
	require.Nil(t, err)
	require.Equal(t, 2, len(first))

	// Everything surfaced once is now in the viewed set.
	second, err := getNewsfeedPosts(db, "u1", 10)
	require.Nil(t, err)
	assert.Equal(t, 0, len(second))
}

func TestGetNewsfeedPosts_OwnCommentedPostsReappear(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	utils.TestCreateUser(t, db, "u1", "viewer")
	utils.TestCreateUser(t, db, "u2", "author")
	utils.TestCreatePost(t, db, "mine", "u1", 0, 3, 0)
	utils.TestCreatePost(t, db, "theirs", "u2", 0, 0, 0)

	first, err := getNewsfeedPosts(db, "u1", 10)
	require.Nil(t, err)
	require.Equal(t, 2, len(first))
	// Own posts rank last whenever any other candidate exists.
	assert.Equal(t, "theirs", first[0].Id)
	assert.Equal(t, "mine", first[1].Id)

	// Own posts are never recorded as viewed, so the commented one keeps
	// coming back while the other author's post stays consumed.
	second, err := getNewsfeedPosts(db, "u1", 10)
	require.Nil(t, err)
	require.Equal(t, 1, len(second))
	assert.Equal(t, "mine", second[0].Id)
}

func TestGetNewsfeedPosts_LimitCutsAfterRanking(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	utils.TestCreateUser(t, db, "u1", "viewer")
	utils.TestCreateUser(t, db, "u2", "author")
	utils.TestCreatePost(t, db, "low", "u2", 1, 0, 0)
	utils.TestCreatePost(t, db, "high", "u2", 100, 0, 0)
	utils.TestCreatePost(t, db, "mid", "u2", 10, 0, 0)

	posts, err := getNewsfeedPosts(db, "u1", 2)
	require.Nil(t, err)
	require.Equal(t, 2, len(posts))
	assert.Equal(t, "high", posts[0].Id)
	assert.Equal(t, "mid", posts[1].Id)

	// The cut-off post was not marked viewed and remains eligible.
	rest, err := getNewsfeedPosts(db, "u1", 10)
	require.Nil(t, err)
	require.Equal(t, 1, len(rest))
	assert.Equal(t, "low", rest[0].Id)
}

func TestGetNewsfeedPosts_ViewerNotFound(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	utils.TestCreateUser(t, db, "u2", "author")
	utils.TestCreatePost(t, db, "p1", "u2", 1, 0, 0)

	var before int64
	require.Nil(t, db.Model(&model.UserPostView{}).Count(&before).Error)

	posts, err := getNewsfeedPosts(db, "ghost", 10)
	assert.Nil(t, posts)
	assert.True(t, errors.Is(err, ErrNotFound))

	// Failed lookups must leave the viewed set untouched.
	var after int64
	require.Nil(t, db.Model(&model.UserPostView{}).Count(&after).Error)
	assert.Equal(t, before, after)
}
