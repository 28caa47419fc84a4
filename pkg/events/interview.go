package events

import "time"

// Event type codes for the interview lifecycle.
const (
	TypeInterviewCompleted = "INTERVIEW_COMPLETED"
)

// NewInterviewCompleted builds the event published when a session reaches
// its terminal state.
func NewInterviewCompleted(sessionID string, topic string, overallQuality int, recommendation string) BaseEvent {
	return BaseEvent{
		Type: TypeInterviewCompleted,
		Data: map[string]interface{}{
			"session_id":      sessionID,
			"topic":           topic,
			"overall_quality": overallQuality,
			"recommendation":  recommendation,
		},
		OccurredAt: time.Now(),
	}
}
