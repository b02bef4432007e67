package comm

import (
	"time"

	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"
)

// Session event types published on the lobby.sessions subject.
const (
	SessionStarted = "session_started"
	SessionEnded   = "session_ended"
)

// SessionEvent is the payload published when a play session opens or
// closes. Downstream consumers (analytics, activity feeds) subscribe
// to these, the lobby never waits on them.
type SessionEvent struct {
	Type      string             `json:"type"` // session_started, session_ended
	Session   models.GameSession `json:"session"`
	Timestamp time.Time          `json:"timestamp"`
}

// ServiceHeartbeat identifies a running lobby instance.
type ServiceHeartbeat struct {
	ID        string    `json:"id"` // service instance id
	Timestamp time.Time `json:"timestamp"`
}
