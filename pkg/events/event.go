package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "RESEARCH_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// ResearchCompletedEvent fires after a research pipeline run finishes for a session.
type ResearchCompletedEvent struct {
	EventID         string
	SessionID       string
	CompanyName     string
	SourcesAnalyzed int
	OccurredAt      time.Time
}

func NewResearchCompletedEvent(sessionID, companyName string, sourcesAnalyzed int) ResearchCompletedEvent {
	return ResearchCompletedEvent{
		EventID:         uuid.NewString(),
		SessionID:       sessionID,
		CompanyName:     companyName,
		SourcesAnalyzed: sourcesAnalyzed,
		OccurredAt:      time.Now(),
	}
}

func (e ResearchCompletedEvent) EventType() string {
	return "RESEARCH_COMPLETED"
}

func (e ResearchCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"event_id":         e.EventID,
		"session_id":       e.SessionID,
		"company_name":     e.CompanyName,
		"sources_analyzed": e.SourcesAnalyzed,
		"occurred_at":      e.OccurredAt,
	}
}

func (e ResearchCompletedEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// PlanGeneratedEvent fires after an account plan document is produced for a session.
type PlanGeneratedEvent struct {
	EventID     string
	SessionID   string
	CompanyName string
	Version     string
	OccurredAt  time.Time
}

func NewPlanGeneratedEvent(sessionID, companyName, version string) PlanGeneratedEvent {
	return PlanGeneratedEvent{
		EventID:     uuid.NewString(),
		SessionID:   sessionID,
		CompanyName: companyName,
		Version:     version,
		OccurredAt:  time.Now(),
	}
}

func (e PlanGeneratedEvent) EventType() string {
	return "PLAN_GENERATED"
}

func (e PlanGeneratedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"event_id":     e.EventID,
		"session_id":   e.SessionID,
		"company_name": e.CompanyName,
		"version":      e.Version,
		"occurred_at":  e.OccurredAt,
	}
}

func (e PlanGeneratedEvent) Timestamp() time.Time {
	return e.OccurredAt
}
