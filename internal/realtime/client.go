package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// writeWait is the deadline for a single outbound frame.
	writeWait = 10 * time.Second
	// pongWait is how long a connection may stay silent before it is
	// considered dead. Pings go out at a fraction of this interval.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4 * 1024
	sendBufferSize = 64
)

// clientFrame is the only inbound message shape: an action plus the campaign
// context it applies to.
type clientFrame struct {
	Action    string `json:"action"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Username  string `json:"username"`
}

const (
	actionJoinSession     = "join-session"
	actionLeaveSession    = "leave-session"
	actionGetSessionUsers = "get-session-users"
)

// Client is one websocket connection managed by the hub. Writes go through the
// buffered send channel so the fan-out path never blocks on a slow socket.
type Client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	logger *slog.Logger
	send   chan []byte

	// sessionID is guarded by the hub's mutex, not the client.
	sessionID string
}

func newClient(hub *Hub, conn *websocket.Conn, logger *slog.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		id:     id,
		hub:    hub,
		conn:   conn,
		logger: logger.With(slog.String("client_id", id)),
		send:   make(chan []byte, sendBufferSize),
	}
}

// enqueue hands a marshaled message to the write pump. A client whose buffer
// is full is dropped; the read pump notices the closed connection and cleans
// up through the usual disconnect path.
func (client *Client) enqueue(data []byte) {
	select {
	case client.send <- data:
	default:
		client.logger.Warn("realtime_client_send_buffer_full")
		_ = client.conn.Close()
	}
}

// sendMessage marshals and enqueues a typed message for this client only.
func (client *Client) sendMessage(messageType MessageType, payload any) {
	data, err := json.Marshal(Message{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		client.logger.Error("realtime_marshal_failed", slog.Any("error", err))
		return
	}
	client.enqueue(data)
}

// readPump consumes client frames until the connection drops, then runs the
// disconnect path. Must be the only reader of the connection.
func (client *Client) readPump(ctx context.Context) {
	// The send channel is never closed: the hub may still be fanning out to
	// this client while it disconnects. Closing the connection makes the
	// write pump's next write or ping fail, which ends it.
	defer func() {
		client.hub.announceLeave(ctx, client)
		_ = client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				client.logger.Warn("realtime_client_read_failed", slog.Any("error", err))
			}
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			client.logger.Warn("realtime_client_bad_frame", slog.Any("error", err))
			continue
		}

		client.handleFrame(ctx, frame)
	}
}

func (client *Client) handleFrame(ctx context.Context, frame clientFrame) {
	switch frame.Action {
	case actionJoinSession:
		client.handleJoin(ctx, frame)
	case actionLeaveSession:
		client.hub.announceLeave(ctx, client)
	case actionGetSessionUsers:
		sessionID := frame.SessionID
		if sessionID == "" {
			if member, ok := client.hub.registry.Get(client.id); ok {
				sessionID = member.SessionID
			}
		}
		client.sendMessage(TypeSessionUsers, client.hub.registry.SessionMembers(sessionID))
	default:
		client.logger.Warn("realtime_client_unknown_action", slog.String("action", frame.Action))
	}
}

func (client *Client) handleJoin(ctx context.Context, frame clientFrame) {
	if frame.SessionID == "" {
		client.logger.Warn("realtime_client_join_without_session")
		return
	}

	// Re-joining moves the client, so tell the old room first.
	if member, ok := client.hub.registry.Get(client.id); ok && member.SessionID != frame.SessionID {
		client.hub.announceLeave(ctx, client)
	}

	username := frame.Username
	if username == "" {
		username = "Adventurer"
	}

	member := client.hub.registry.Join(client.id, frame.SessionID, username, NormalizeRole(frame.Role))
	client.hub.joinRoom(client, frame.SessionID)

	client.sendMessage(TypeSessionUsers, client.hub.registry.SessionMembers(frame.SessionID))

	err := client.hub.broadcaster.PublishExcluding(ctx, frame.SessionID, client.id, TypeUserJoined, presencePayload{
		ClientID: client.id,
		Username: member.Username,
		Role:     member.Role,
	})
	if err != nil {
		client.logger.Warn("realtime_user_joined_publish_failed",
			slog.String("session_id", frame.SessionID),
			slog.Any("error", err),
		)
	}
}

// writePump flushes the send channel to the socket and keeps the connection
// alive with pings. Must be the only writer of the connection.
func (client *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.conn.Close()
	}()

	for {
		select {
		case data := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
