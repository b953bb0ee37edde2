package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/greatochuko/fobeworkLMS/internal/domain"
	pkgkafka "github.com/greatochuko/fobeworkLMS/pkg/kafka"
)

// Kafka topic constants for user domain events.
const (
	TopicUserRegistered = "learnex.user.registered"
	TopicUserUpdated    = "learnex.user.updated"
	TopicUserLoggedIn   = "learnex.user.logged_in"
)

// Aggregate type constant.
const AggregateTypeUser = "user"

// Source identifier for events originating from this service.
const SourceLearnex = "learnex-api"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserUpdatedData is the payload for a user.updated event.
type UserUpdatedData struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// UserLoggedInData is the payload for a user.logged_in event.
type UserLoggedInData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Producer publishes user domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, AggregateTypeUser, SourceLearnex, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// PublishUserUpdated publishes a user.updated event.
func (p *Producer) PublishUserUpdated(ctx context.Context, user *domain.User) error {
	data := UserUpdatedData{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		ProfilePicture: user.ProfilePicture,
	}

	event, err := pkgkafka.NewEvent(TopicUserUpdated, user.ID, AggregateTypeUser, SourceLearnex, data)
	if err != nil {
		return fmt.Errorf("create user.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserUpdated, event); err != nil {
		return fmt.Errorf("publish user.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.updated event",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// PublishUserLoggedIn publishes a user.logged_in event.
func (p *Producer) PublishUserLoggedIn(ctx context.Context, userID, email string) error {
	data := UserLoggedInData{
		UserID: userID,
		Email:  email,
	}

	event, err := pkgkafka.NewEvent(TopicUserLoggedIn, userID, AggregateTypeUser, SourceLearnex, data)
	if err != nil {
		return fmt.Errorf("create user.logged_in event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserLoggedIn, event); err != nil {
		return fmt.Errorf("publish user.logged_in event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.logged_in event",
		slog.String("user_id", userID),
		slog.String("email", email),
	)

	return nil
}
