package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	. "github.com/socialmux/socialmux/utils/log"
)

// GetNewsfeed handles GET /newsfeed/:limit.
//
// An unknown viewer is a 404. Any other failure in the ranking pipeline is
// logged and served as an empty feed with status 200: for this endpoint
// availability wins over surfacing the fault, callers must treat an empty
// feed as possibly transient.
func (h *Handler) GetNewsfeed(c *gin.Context) {
	limit, err := strconv.Atoi(c.Param("limit"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "limit must be a positive integer"})
		return
	}
	userId := c.Request.Header.Get("sub")

	posts, err := getNewsfeedPosts(h.DB, userId, limit)
	if errors.Is(err, ErrNotFound) {
		abortWithError(c, err)
		return
	}
	if err != nil {
		Log.Errorln("newsfeed degraded to empty result: ", err)
		c.JSON(http.StatusOK, gin.H{"posts": []*LitePostResponse{}})
		return
	}

	resps := litePostResponses(posts)
	h.decorateReadStatus(resps, userId)
	c.JSON(http.StatusOK, gin.H{"posts": resps})
}

// decorateReadStatus fills the IsRead flag from redis, best effort.
func (h *Handler) decorateReadStatus(resps []*LitePostResponse, userId string) {
	if h.StatusStore == nil || len(resps) == 0 {
		return
	}

	ids := []string{}
	for _, resp := range resps {
		ids = append(ids, resp.Id)
	}
	status, err := h.StatusStore.GetPostsReadStatus(ids, userId)
	if err != nil || len(status) != len(resps) {
		Log.Infoln("skip read status decoration: ", err)
		return
	}
	for idx := range resps {
		resps[idx].IsRead = status[idx]
	}
}
