package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/civic-complaints/internal/events"
)

// NotificationService reacts to domain events. Actual delivery channels
// (SMS, email) are external; handlers log structured records that a
// downstream notifier can consume.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventComplaintCreated, n.handleComplaintCreated)
	n.dispatcher.Subscribe(events.EventComplaintStatusChanged, n.handleComplaintStatusChanged)
	n.dispatcher.Subscribe(events.EventComplaintUpvoted, n.handleComplaintUpvoted)
	n.dispatcher.Subscribe(events.EventMunicipalityAssigned, n.handleMunicipalityAssigned)
}

func (n *NotificationService) handleComplaintCreated(_ context.Context, event events.Event) error {
	n.logger.Info("ComplaintCreated", zap.String("complaint_id", event.ComplaintID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleComplaintStatusChanged(_ context.Context, event events.Event) error {
	n.logger.Info("ComplaintStatusChanged", zap.String("complaint_id", event.ComplaintID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleComplaintUpvoted(_ context.Context, event events.Event) error {
	n.logger.Debug("ComplaintUpvoted", zap.String("complaint_id", event.ComplaintID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleMunicipalityAssigned(_ context.Context, event events.Event) error {
	n.logger.Info("MunicipalityAssigned", zap.Any("actor", event.Actor), zap.Any("payload", event.Payload))
	return nil
}
