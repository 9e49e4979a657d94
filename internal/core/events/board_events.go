package events

import (
	"context"
	"fmt"
	"time"
)

func NewApplicationSubmitted(applicationID, jobID, applicantID int64) BaseEvent {
	return BaseEvent{
		ID:        fmt.Sprintf("application-%d-%d", applicationID, time.Now().UnixNano()),
		Type:      TypeApplicationSubmitted,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"application_id": applicationID,
			"job_id":         jobID,
			"applicant_id":   applicantID,
		},
	}
}

func NewJobExpired(jobID int64) BaseEvent {
	return BaseEvent{
		ID:        fmt.Sprintf("job-expired-%d-%d", jobID, time.Now().UnixNano()),
		Type:      TypeJobExpired,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"job_id": jobID,
		},
	}
}

func NewUserDeleted(userID int64, role string) BaseEvent {
	return BaseEvent{
		ID:        fmt.Sprintf("user-deleted-%d-%d", userID, time.Now().UnixNano()),
		Type:      TypeUserDeleted,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id": userID,
			"role":    role,
		},
	}
}

// AuditSubscriber wires a logging handler for every board event type.
func AuditSubscriber(bus *EventBus) {
	audit := func(name string) Handler {
		return func(ctx context.Context, event Event) error {
			bus.logger.Info("audit: "+name,
				"event_id", event.EventID(),
				"occurred_at", event.OccurredAt(),
				"payload", event.Payload())
			return nil
		}
	}

	bus.Subscribe(TypeApplicationSubmitted, audit("application submitted"))
	bus.Subscribe(TypeJobExpired, audit("job expired"))
	bus.Subscribe(TypeUserDeleted, audit("user deleted"))
}
