package rest

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/socialmux/socialmux/model"
	"github.com/socialmux/socialmux/utils"
	"gorm.io/gorm"
)

// scoredPost pairs a candidate with its computed relevance.
type scoredPost struct {
	post  *model.Post
	score float64
}

// newsfeedScore computes the relevance of one candidate post for the viewer:
//
//	base = sqrt(totalLike + totalComment + sqrt(totalView))
//	score = base * isFollowed * isMine - (1 - isMine)
//
// where isFollowed is 5 for followed authors (1 otherwise) and isMine is 0
// for the viewer's own posts (1 otherwise). For the viewer's own posts the
// product collapses to zero and the score is the constant -1, which ranks
// their commented posts behind every other candidate while keeping them in
// the feed as filler.
func newsfeedScore(post *model.Post, viewerId string, followedIds []string) float64 {
	isMine := 1.0
	if post.AuthorID == viewerId {
		isMine = 0
	}
	isFollowed := 1.0
	if utils.ContainsString(followedIds, post.AuthorID) {
		// 5x boost for followed authors
		isFollowed = 5
	}
	base := math.Sqrt(float64(post.TotalLike) + float64(post.TotalComment) + math.Sqrt(float64(post.TotalView)))
	return base*isFollowed*isMine - (1 - isMine)
}

// getFollowedUserIds returns the ids of all users the given user follows.
func getFollowedUserIds(db *gorm.DB, userId string) ([]string, error) {
	var ids []string
	if err := db.Model(&model.UserFollow{}).
		Where("follower_id = ?", userId).
		Pluck("followee_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "cannot read follow edges")
	}
	return ids, nil
}

// getNewsfeedPosts produces the ranked feed page for a viewer.
//
// The candidate pool is every post not yet surfaced to the viewer, unioned
// with the viewer's own posts that have at least one comment. Candidates are
// scored with newsfeedScore, stable sorted by score descending (pool order
// breaks ties) and cut to limit. Every returned post not authored by the
// viewer is appended to the viewer's viewed set so it won't be surfaced
// again; own posts are never recorded and stay perpetually eligible.
//
// Two concurrent calls for one viewer may both read the viewed set before
// either append commits and return overlapping pages. Last write wins, the
// feed is best effort by design.
func getNewsfeedPosts(db *gorm.DB, userId string, limit int) ([]*model.Post, error) {
	var user model.User
	queryResult := db.Preload("ViewedPosts").Where("id = ?", userId).First(&user)
	if queryResult.RowsAffected != 1 {
		return nil, errors.Wrapf(ErrNotFound, "no valid user found %s", userId)
	}

	followedIds, err := getFollowedUserIds(db, userId)
	if err != nil {
		return nil, err
	}

	viewedIds := []string{}
	for _, post := range user.ViewedPosts {
		viewedIds = append(viewedIds, post.Id)
	}

	var candidates []*model.Post
	query := db.Model(&model.Post{}).Preload("Author")
	if len(viewedIds) > 0 {
		query = query.Where("posts.id NOT IN ?", viewedIds)
	} else {
		query = query.Where("1=1")
	}
	query = query.Or("posts.author_id = ? AND posts.total_comment > 0", userId)
	if err := query.Find(&candidates).Error; err != nil {
		return nil, errors.Wrap(err, "cannot read newsfeed candidates")
	}

	scored := make([]scoredPost, 0, len(candidates))
	for idx := range candidates {
		scored = append(scored, scoredPost{
			post:  candidates[idx],
			score: newsfeedScore(candidates[idx], userId, followedIds),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	limit = utils.Min(limit, len(scored))
	posts := make([]*model.Post, 0, limit)
	newlyViewed := []*model.Post{}
	for _, sp := range scored[:limit] {
		posts = append(posts, sp.post)
		if sp.post.AuthorID != userId {
			newlyViewed = append(newlyViewed, sp.post)
		}
	}

	if len(newlyViewed) > 0 {
		if err := db.Model(&user).Association("ViewedPosts").Append(newlyViewed); err != nil {
			return nil, errors.Wrap(err, "cannot record viewed posts")
		}
	}

	return posts, nil
}
