package events

import (
	"context"

	"go.uber.org/zap"
)

// GuideAssignedEvent is handed to the notification system when a team
// guide is assigned. External/outsourced assignments never emit one.
type GuideAssignedEvent struct {
	ScheduleID string `json:"schedule_id"`
	GuideID    string `json:"guide_id"`
	Status     string `json:"status"`
}

type Publisher interface {
	PublishGuideAssigned(ctx context.Context, event GuideAssignedEvent) error
	Close() error
}

// LogPublisher is used when no broker is configured. Events are
// visible in the logs but not delivered anywhere.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{
		log: log.With(zap.String("publisher", "log")),
	}
}

func (p *LogPublisher) PublishGuideAssigned(_ context.Context, event GuideAssignedEvent) error {
	p.log.Info("Guide assigned event (publishing disabled)",
		zap.String("schedule_id", event.ScheduleID),
		zap.String("guide_id", event.GuideID),
		zap.String("status", event.Status),
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
