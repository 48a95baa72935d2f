package events

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicEngagement carries EngagementEvent payloads from the REST handlers to
// the notification recorder.
const TopicEngagement = "engagement_event"

// EngagementEvent is emitted whenever one user acts on another user's
// content: a like, a comment or a new follow. Handlers publish it fire and
// forget, recording must never block or fail the originating request.
type EngagementEvent struct {
	Type        string  `json:"type"`
	RecipientID string  `json:"recipient_id"`
	ActorID     string  `json:"actor_id"`
	ActorName   string  `json:"actor_name"`
	ActorAvatar string  `json:"actor_avatar"`
	PostID      *string `json:"post_id,omitempty"`
	Detail      string  `json:"detail"`
}

// NewEventBus creates the in-process EventBus shared between the API server
// and the notification recorder. For now we use a golang channel
// implementation for the EventBus, but later when needed we could substitute
// it with a broker-based one.
func NewEventBus() *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            100,
			BlockPublishUntilSubscriberAck: false,
		},
		watermill.NewStdLogger(false, false),
	)
}

// PublishEngagement serializes the event and pushes it onto the bus.
func PublishEngagement(bus *gochannel.GoChannel, event *EngagementEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	return bus.Publish(TopicEngagement, msg)
}
