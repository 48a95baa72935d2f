package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/socialmux/socialmux/server/middlewares"
	"github.com/socialmux/socialmux/server/rest"
	. "github.com/socialmux/socialmux/utils/flag"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

// NewRouter wires every REST route of the API server. All routes sit behind
// the JWT middleware unless auth is bypassed for local development.
func NewRouter(h *rest.Handler) *gin.Engine {
	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(ServiceName))
	if !ByPassAuth {
		router.Use(middlewares.JWT())
	}

	router.GET("/newsfeed/:limit", h.GetNewsfeed)

	router.POST("/posts", h.CreatePost)
	router.PUT("/posts/:postId", h.UpdatePost)
	router.DELETE("/posts/:postId", h.DeletePost)
	router.GET("/posts/:postId", h.GetPost)
	router.GET("/profile/posts/:userId", h.GetPostsByAuthor)

	router.GET("/search/all/:query", h.SearchAll)
	router.GET("/search/post/:query/:page", h.SearchPosts)

	router.POST("/like/:postId", h.LikePost)
	router.DELETE("/like/:postId", h.UnlikePost)
	router.GET("/like/check/:postId", h.CheckPostLike)
	router.GET("/like/:postId/:page", h.GetPostLikers)

	router.POST("/comment/:postId", h.CreateComment)
	router.PUT("/comment/:commentId", h.UpdateComment)
	router.DELETE("/comment/:commentId", h.DeleteComment)
	router.GET("/comment/:postId/:page", h.GetComments)
	router.POST("/comment/like/:commentId", h.LikeComment)
	router.DELETE("/comment/like/:commentId", h.UnlikeComment)

	router.POST("/follow/:userId", h.FollowUser)
	router.DELETE("/follow/:userId", h.UnfollowUser)
	router.GET("/follow/followers/:userId", h.GetFollowers)
	router.GET("/follow/following/:userId", h.GetFollowing)
	router.GET("/follow/check/:userId", h.CheckFollow)
	router.POST("/follow/reconcile", h.ReconcileFollowCounters)

	router.POST("/users", h.UpsertUser)
	router.GET("/users/:userId", h.GetUserProfile)
	router.POST("/favorites/:postId", h.FavoritePost)
	router.DELETE("/favorites/:postId", h.UnfavoritePost)
	router.GET("/favorites", h.GetFavorites)

	router.GET("/notifications/:page", h.GetNotifications)
	router.POST("/notifications/read", h.MarkNotificationsRead)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	return router
}
