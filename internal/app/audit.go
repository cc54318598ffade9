package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"sharespace/internal/model"
)

// auditor publishes auth events best-effort; a broker outage never fails the
// request that produced the event.
type auditor struct {
	publisher EventPublisher
	log       *zap.Logger
}

func (a auditor) record(ctx context.Context, userID, eventType string, meta RequestMeta) {
	if a.publisher == nil {
		return
	}
	event := model.AuthEvent{
		UserID:    userID,
		Type:      eventType,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.publisher.Publish(ctx, event); err != nil {
		a.log.Warn("publish auth event failed",
			zap.String("type", eventType),
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}
