package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/echonet/echonet/internal/config"
	"github.com/echonet/echonet/internal/events"
)

// ActivityService reacts to social events with log entries and webhook stubs.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.ActivityConfig
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.ActivityConfig) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleUserRegistered)
	a.dispatcher.Subscribe(events.EventPostLiked, a.handlePostLiked)
	a.dispatcher.Subscribe(events.EventCommentAdded, a.handleCommentAdded)
	a.dispatcher.Subscribe(events.EventFriendAdded, a.handleFriendAdded)
}

func (a *ActivityService) handleUserRegistered(ctx context.Context, event events.Event) error {
	a.logger.Info("UserRegistered", zap.Int64("user_id", event.ActorID), zap.Any("payload", event.Payload))
	return nil
}

func (a *ActivityService) handlePostLiked(ctx context.Context, event events.Event) error {
	a.logger.Info("PostLiked", zap.Int64("user_id", event.ActorID), zap.Any("payload", event.Payload))
	a.sendWebhookStub(ctx, event)
	return nil
}

func (a *ActivityService) handleCommentAdded(ctx context.Context, event events.Event) error {
	a.logger.Info("CommentAdded", zap.Int64("user_id", event.ActorID), zap.Any("payload", event.Payload))
	a.sendWebhookStub(ctx, event)
	return nil
}

func (a *ActivityService) handleFriendAdded(ctx context.Context, event events.Event) error {
	a.logger.Info("FriendAdded", zap.Int64("user_id", event.ActorID), zap.Any("payload", event.Payload))
	a.sendWebhookStub(ctx, event)
	return nil
}

func (a *ActivityService) sendWebhookStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(a.cfg.WebhookURL) == "" {
		return
	}
	a.logger.Debug("sendWebhookStub",
		zap.String("url", a.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
