package rest

import (
	"encoding/json"
	"time"

	"github.com/jinzhu/copier"
	"github.com/socialmux/socialmux/model"
	"github.com/socialmux/socialmux/utils"
)

const itemsPerPage = 10

type UserResponse struct {
	Id        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	AvatarUrl string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserProfileResponse struct {
	UserResponse
	Bio            string `json:"bio"`
	TotalFollowers int    `json:"totalFollowers"`
	TotalFollowing int    `json:"totalFollowing"`
}

// LitePostResponse is the post shape used in lists: newsfeed, search,
// profile. Steps are omitted to keep payloads small.
type LitePostResponse struct {
	Id           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	MainImage    string       `json:"mainImage"`
	TotalLike    int          `json:"totalLike"`
	TotalComment int          `json:"totalComment"`
	TotalView    int          `json:"totalView"`
	CreatedAt    time.Time    `json:"createdAt"`
	Author       UserResponse `json:"author"`
	IsRead       bool         `json:"isRead"`
}

type FullPostResponse struct {
	LitePostResponse
	Steps []string `json:"steps"`
}

type CommentResponse struct {
	Id        string       `json:"id"`
	Content   string       `json:"content"`
	TotalLike int          `json:"totalLike"`
	IsLiked   bool         `json:"isLiked"`
	CreatedAt time.Time    `json:"createdAt"`
	User      UserResponse `json:"user"`
}

type NotificationResponse struct {
	Id          string    `json:"id"`
	Type        string    `json:"type"`
	ActorID     string    `json:"actorId"`
	ActorName   string    `json:"actorName"`
	ActorAvatar string    `json:"actorAvatar"`
	PostID      *string   `json:"postId,omitempty"`
	Detail      string    `json:"detail"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

func userResponse(user *model.User) UserResponse {
	resp := UserResponse{}
	copier.Copy(&resp, user)
	return resp
}

func userProfileResponse(user *model.User) UserProfileResponse {
	resp := UserProfileResponse{}
	copier.Copy(&resp, user)
	return resp
}

func litePostResponse(post *model.Post) *LitePostResponse {
	resp := LitePostResponse{}
	copier.Copy(&resp, post)
	return &resp
}

func litePostResponses(posts []*model.Post) []*LitePostResponse {
	resps := []*LitePostResponse{}
	for idx := range posts {
		resps = append(resps, litePostResponse(posts[idx]))
	}
	return resps
}

func fullPostResponse(post *model.Post) *FullPostResponse {
	resp := FullPostResponse{}
	copier.Copy(&resp, post)
	resp.Steps = []string{}
	if len(post.Steps) > 0 {
		// Steps are stored as a JSON array of strings, a decode failure leaves
		// the list empty rather than failing the response.
		json.Unmarshal(post.Steps, &resp.Steps)
	}
	return &resp
}

func commentResponse(comment *model.Comment, viewerId string) *CommentResponse {
	resp := CommentResponse{}
	copier.Copy(&resp, comment)
	for _, liker := range comment.Likes {
		if liker.Id == viewerId {
			resp.IsLiked = true
			break
		}
	}
	return &resp
}

func notificationResponse(notification *model.Notification) *NotificationResponse {
	resp := NotificationResponse{}
	copier.Copy(&resp, notification)
	return &resp
}

// paginate cuts items [start, end) for a 1-based page of itemsPerPage and
// reports whether another page exists, matching the nextPage contract of the
// list endpoints.
func paginate(total, page int) (start int, end int, nextPage bool) {
	start = (page - 1) * itemsPerPage
	if start < 0 || start > total {
		return 0, 0, false
	}
	end = utils.Min(start+itemsPerPage, total)
	return start, end, total > page*itemsPerPage
}
