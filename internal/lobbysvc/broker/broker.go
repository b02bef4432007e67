package broker

import (
	"encoding/json"
	"time"

	"github.com/goldenreel/lobby-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const (
	sessionSubject   = "lobby.sessions"
	heartbeatSubject = "lobby.heartbeat"
)

// Broker publishes lobby events to NATS. Consumers are downstream
// services (analytics, activity feeds); the lobby never blocks on them.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

// PublishSessionEvent emits a session lifecycle event.
func (b *Broker) PublishSessionEvent(ev comm.SessionEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Errorf("Error marshaling session event %s", err)
		return err
	}

	return b.Conn.Publish(sessionSubject, data)
}

// PublishHeartbeat announces a running lobby instance.
func (b *Broker) PublishHeartbeat(instanceID string) error {
	hb := comm.ServiceHeartbeat{
		ID:        instanceID,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(hb)
	if err != nil {
		log.Errorf("Error marshaling heartbeat %s", err)
		return err
	}

	return b.Conn.Publish(heartbeatSubject, data)
}
