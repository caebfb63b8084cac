package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"blog-service/internal/model"
)

type EventPublisher interface {
	PublishPostCreated(post *model.Post) error
	PublishPostDeleted(postID, creatorID uuid.UUID) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type PostCreatedEvent struct {
	EventType string    `json:"event_type"`
	PostID    uuid.UUID `json:"post_id"`
	CreatorID uuid.UUID `json:"creator_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type PostDeletedEvent struct {
	EventType string    `json:"event_type"`
	PostID    uuid.UUID `json:"post_id"`
	CreatorID uuid.UUID `json:"creator_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (p *NatsPublisher) PublishPostCreated(post *model.Post) error {
	event := PostCreatedEvent{
		EventType: "post.created",
		PostID:    post.ID,
		CreatorID: post.Creator,
		Title:     post.Title,
		Category:  post.Category,
		CreatedAt: post.CreatedAt,
	}

	return p.publish("post.created", event)
}

func (p *NatsPublisher) PublishPostDeleted(postID, creatorID uuid.UUID) error {
	event := PostDeletedEvent{
		EventType: "post.deleted",
		PostID:    postID,
		CreatorID: creatorID,
		DeletedAt: time.Now(),
	}

	return p.publish("post.deleted", event)
}

func (p *NatsPublisher) publish(subject string, event any) error {
	eventJSON, err := json.Marshal(event)

	if err != nil {
		slog.Error("Error marshalling event JSON", "subject", subject, "error", err)
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		slog.Error("Error publishing to NATS", "subject", subject, "error", err)
		return err
	}

	slog.Info("Published event to NATS", "subject", subject)

	return nil
}
