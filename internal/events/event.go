// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"nerve_engine_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Bureau Domain Events
// =============================================================================

// BureauProfileCreated is published when a bureau profile is synthesized and
// stored for a client for the first time.
type BureauProfileCreated struct {
	BaseEvent
	ClientID     uuid.UUID `json:"clientId"`
	PresageScore int       `json:"presageScore"`
}

func (e BureauProfileCreated) EventName() string { return "bureau.profile.created" }

// =============================================================================
// Recommendation Domain Events
// =============================================================================

// RecommendationGenerated is published after a recommendation record is
// written for a client.
type RecommendationGenerated struct {
	BaseEvent
	ClientID   uuid.UUID `json:"clientId"`
	Categories []string  `json:"categories"`
}

func (e RecommendationGenerated) EventName() string { return "recommendation.generated" }
