// Package telemetry carries activity events from the engines to whatever
// sinks are configured (MQTT, the live web feed, the MongoDB archive).
package telemetry

import (
	"time"

	"github.com/google/uuid"
)

// Event kinds emitted by the engines.
const (
	KindCensorDetected = "censor_detected"
	KindCensorPunished = "censor_punished"
	KindVoiceJoin      = "voice_join"
	KindVoiceLeave     = "voice_leave"
	KindWelcomeSent    = "welcome_sent"
	KindWarningReset   = "warning_reset"
)

// Event is a single activity record.
type Event struct {
	ID        string         `json:"id" bson:"id"`
	Kind      string         `json:"kind" bson:"kind"`
	GuildID   string         `json:"guild_id" bson:"guild_id"`
	UserID    string         `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Data      map[string]any `json:"data,omitempty" bson:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
}

// NewEvent builds an Event with a fresh ID and the current time.
func NewEvent(kind, guildID, userID string, data map[string]any) Event {
	return Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		GuildID:   guildID,
		UserID:    userID,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// Sink consumes events. Implementations must not block the caller for long
// and must swallow their own delivery failures.
type Sink interface {
	Publish(Event)
}

// MultiSink fans one event out to several sinks.
type MultiSink []Sink

// Publish sends the event to every sink.
func (m MultiSink) Publish(evt Event) {
	for _, s := range m {
		if s != nil {
			s.Publish(evt)
		}
	}
}

// Nop is a sink that drops everything. Engines use it when telemetry is not
// wired, so they never need a nil check.
type Nop struct{}

// Publish discards the event.
func (Nop) Publish(Event) {}
