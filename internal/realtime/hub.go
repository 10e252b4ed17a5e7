package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/aetherialcal/aethercal/internal/platform/constants"
)

// Hub owns the websocket side of the broadcast contract: it keeps a room of
// connected clients per campaign, subscribes to every campaign channel on
// Redis, and fans each received frame out to the matching room.
type Hub struct {
	logger      *slog.Logger
	registry    *Registry
	redisClient *redis.Client
	broadcaster *RedisBroadcaster

	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub(redisClient *redis.Client, registry *Registry, broadcaster *RedisBroadcaster, logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger,
		registry:    registry,
		redisClient: redisClient,
		broadcaster: broadcaster,
		rooms:       make(map[string]map[*Client]struct{}),
	}
}

// Registry exposes the hub's membership registry for presence lookups.
func (hub *Hub) Registry() *Registry {
	return hub.registry
}

// Run subscribes to every campaign channel and pumps frames to local rooms.
// It blocks until ctx is cancelled.
func (hub *Hub) Run(ctx context.Context) error {
	pubsub := hub.redisClient.PSubscribe(ctx, constants.RedisChannelPrefixCampaign+"*")
	defer func() {
		if err := pubsub.Close(); err != nil {
			hub.logger.Error("realtime_pubsub_close_failed", slog.Any("error", err))
		}
	}()

	channel := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case received, ok := <-channel:
			if !ok {
				return nil
			}
			hub.dispatch([]byte(received.Payload))
		}
	}
}

// dispatch unwraps a transport frame and fans the inner message out to the
// campaign's room, honoring the frame's exclusion.
func (hub *Hub) dispatch(raw []byte) {
	var frame transportFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		hub.logger.Error("realtime_bad_frame", slog.Any("error", err))
		return
	}

	data, err := json.Marshal(frame.Message)
	if err != nil {
		hub.logger.Error("realtime_marshal_failed", slog.Any("error", err))
		return
	}

	hub.mu.RLock()
	room := hub.rooms[frame.SessionID]
	clients := make([]*Client, 0, len(room))
	for client := range room {
		if frame.Exclude != "" && client.id == frame.Exclude {
			continue
		}
		clients = append(clients, client)
	}
	hub.mu.RUnlock()

	for _, client := range clients {
		client.enqueue(data)
	}
}

// joinRoom adds a client to a campaign room, removing it from any previous one.
func (hub *Hub) joinRoom(client *Client, sessionID string) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	hub.removeLocked(client)

	room, ok := hub.rooms[sessionID]
	if !ok {
		room = make(map[*Client]struct{})
		hub.rooms[sessionID] = room
	}
	room[client] = struct{}{}
	client.sessionID = sessionID
}

// leaveRoom removes a client from its room, if any.
func (hub *Hub) leaveRoom(client *Client) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.removeLocked(client)
}

func (hub *Hub) removeLocked(client *Client) {
	if client.sessionID == "" {
		return
	}
	if room, ok := hub.rooms[client.sessionID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(hub.rooms, client.sessionID)
		}
	}
	client.sessionID = ""
}

// announceLeave purges a client's registry entry and tells the remaining room
// members. Shared by the explicit leave frame and the disconnect path, which
// must behave identically.
func (hub *Hub) announceLeave(ctx context.Context, client *Client) {
	member, wasJoined := hub.registry.Leave(client.id)
	hub.leaveRoom(client)

	if !wasJoined {
		return
	}

	err := hub.broadcaster.PublishExcluding(ctx, member.SessionID, client.id, TypeUserLeft, presencePayload{
		ClientID: client.id,
		Username: member.Username,
		Role:     member.Role,
	})
	if err != nil {
		hub.logger.Warn("realtime_user_left_publish_failed",
			slog.String("session_id", member.SessionID),
			slog.Any("error", err),
		)
	}
}

// presencePayload is the body of user-joined and user-left notices.
type presencePayload struct {
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
