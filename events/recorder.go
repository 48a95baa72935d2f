package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/socialmux/socialmux/model"
	Logger "github.com/socialmux/socialmux/utils/log"
	"gorm.io/gorm"
)

// NotificationRecorder's job is to listen to engagement events and persist
// one Notification row per event. Device push is out of scope, other systems
// read the rows from the notifications table.
type NotificationRecorder struct {
	DB *gorm.DB

	EventBus *gochannel.GoChannel
}

func NewNotificationRecorder(db *gorm.DB, e *gochannel.GoChannel) *NotificationRecorder {
	return &NotificationRecorder{
		DB:       db,
		EventBus: e,
	}
}

// Run consumes the engagement topic until ctx is canceled. Malformed or
// unrecordable events are logged and skipped, never retried.
func (r *NotificationRecorder) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := r.EventBus.Subscribe(ctx, TopicEngagement)
	if err != nil {
		return err
	}

	for msg := range messages {
		msg.Ack()

		var event EngagementEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			Logger.Log.Errorln("cannot decode engagement event: ", err)
			continue
		}

		// Acting on your own content doesn't notify yourself.
		if event.RecipientID == event.ActorID {
			continue
		}

		notification := model.Notification{
			Id:          uuid.New().String(),
			CreatedAt:   time.Now(),
			UserID:      event.RecipientID,
			Type:        event.Type,
			ActorID:     event.ActorID,
			ActorName:   event.ActorName,
			ActorAvatar: event.ActorAvatar,
			PostID:      event.PostID,
			Detail:      event.Detail,
		}
		if err := r.DB.Create(&notification).Error; err != nil {
			Logger.Log.Errorln("cannot persist notification: ", err)
		}
	}

	return nil
}
