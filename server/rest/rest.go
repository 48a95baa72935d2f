package rest

import (
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/socialmux/socialmux/utils"
	"gorm.io/gorm"
)

// It serves as dependency injection for your app, add any dependencies you require here.

type Handler struct {
	DB *gorm.DB

	// StatusStore decorates responses with per-user read flags. It may be nil
	// when redis is unavailable, decoration is then skipped.
	StatusStore *utils.RedisStatusStore

	// EventBus carries engagement events to the notification recorder.
	EventBus *gochannel.GoChannel
}
