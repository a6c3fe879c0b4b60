package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/AnshRaj112/feedbackhub-backend/internal/logging"
	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
)

const TopicFeedbackSubmitted = "feedback.submitted"

// FeedbackEvent is published after a submission is stored.
type FeedbackEvent struct {
	Type      string          `json:"type"`
	Feedback  FeedbackSummary `json:"feedback"`
	Timestamp time.Time       `json:"timestamp"`
}

// FeedbackSummary is the subset of a record pushed to the admin live feed.
type FeedbackSummary struct {
	ID          string           `json:"id"`
	Category    string           `json:"category"`
	ProductName string           `json:"productName"`
	Rating      int              `json:"rating"`
	Sentiment   models.Sentiment `json:"sentiment"`
	Urgency     models.Urgency   `json:"urgency"`
	Tags        []string         `json:"tags"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func summarize(fb models.Feedback) FeedbackSummary {
	return FeedbackSummary{
		ID:          fb.ID,
		Category:    fb.Category,
		ProductName: fb.ProductName,
		Rating:      fb.Rating,
		Sentiment:   fb.Sentiment,
		Urgency:     fb.Urgency,
		Tags:        fb.Tags,
		CreatedAt:   fb.CreatedAt,
	}
}

// Publisher is what the feedback service needs from the event bus.
type Publisher interface {
	PublishFeedback(ctx context.Context, fb models.Feedback) error
}

// EventBus is an in-process pub/sub for domain events.
type EventBus struct {
	pubsub *gochannel.GoChannel
}

func NewEventBus() *EventBus {
	return &EventBus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, zerologAdapter{}),
	}
}

func (b *EventBus) PublishFeedback(ctx context.Context, fb models.Feedback) error {
	payload, err := json.Marshal(FeedbackEvent{
		Type:      TopicFeedbackSubmitted,
		Feedback:  summarize(fb),
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal feedback event: %w", err)
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		msg.Metadata.Set("request_id", id)
	}
	return b.pubsub.Publish(TopicFeedbackSubmitted, msg)
}

// Subscribe returns a channel of submission events until ctx is done. Each
// message must be acked.
func (b *EventBus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, TopicFeedbackSubmitted)
}

func (b *EventBus) Close() error {
	return b.pubsub.Close()
}

// zerologAdapter routes watermill's internal logging to the global logger.
type zerologAdapter struct {
	fields watermill.LogFields
}

func (a zerologAdapter) Error(msg string, err error, fields watermill.LogFields) {
	logging.Error().Err(err).Fields(map[string]interface{}(a.fields.Add(fields))).Msg(msg)
}

func (a zerologAdapter) Info(msg string, fields watermill.LogFields) {
	logging.Debug().Fields(map[string]interface{}(a.fields.Add(fields))).Msg(msg)
}

func (a zerologAdapter) Debug(msg string, fields watermill.LogFields) {
	logging.Debug().Fields(map[string]interface{}(a.fields.Add(fields))).Msg(msg)
}

func (a zerologAdapter) Trace(string, watermill.LogFields) {}

func (a zerologAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return zerologAdapter{fields: a.fields.Add(fields)}
}
