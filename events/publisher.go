package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// EventType identifies what happened in a room.
type EventType string

const (
	ParticipantJoined EventType = "PARTICIPANT_JOINED"
	ParticipantLeft   EventType = "PARTICIPANT_LEFT"
	RoomCreated       EventType = "ROOM_CREATED"
	RoomClosed        EventType = "ROOM_CLOSED"
)

// Channel is the redis pub/sub channel carrying room events.
const Channel = "motionit:room-events"

// RoomEvent is the notification contract emitted toward external
// consumers. Delivery is fire-and-forget: publish failures must never roll
// back the transaction that produced the event.
type RoomEvent struct {
	Type       EventType `json:"type"`
	RoomID     uint      `json:"roomId"`
	UserID     uint      `json:"userId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher accepts room notifications.
type Publisher interface {
	Publish(ctx context.Context, ev RoomEvent) error
}

// RedisPublisher publishes room events over redis pub/sub.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev RoomEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, Channel, payload).Err()
}
