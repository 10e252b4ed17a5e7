/*
Package realtime synchronizes connected clients of the same campaign.

Every mutation committed by the store layer is published as a typed message to
a per-campaign Redis channel; the websocket hub subscribes to those channels
and fans each message out to every connected member of the campaign's room.
The server is the single source of truth: originators receive their own
broadcasts and apply changes only when they arrive, so a client never assumes
its write succeeded before the hub says so.
*/
package realtime

import (
	"context"
	"time"
)

// MessageType names a broadcast message. The values are the wire-level event
// names the calendar client has always listened for.
type MessageType string

const (
	TypeEventAdded               MessageType = "event-added"
	TypeEventDeleted             MessageType = "event-deleted"
	TypeEventMoved               MessageType = "event-moved"
	TypeEventConfirmationUpdated MessageType = "event-confirmation-updated"
	TypePartyGroupAdded          MessageType = "party-group-added"
	TypePartyGroupDeleted        MessageType = "party-group-deleted"
	TypePartyPositionUpdated     MessageType = "party-position-updated"
	TypeDayCompleted             MessageType = "day-completed"
	TypeDayUncompleted           MessageType = "day-uncompleted"
	TypeCategoryAdded            MessageType = "category-added"
	TypeCategoryDeleted          MessageType = "category-deleted"
	TypeSessionDeleted           MessageType = "session-deleted"
	TypeHolidayAdded             MessageType = "holiday-added"
	TypeHolidayDeleted           MessageType = "holiday-deleted"
	TypeWeatherUpdated           MessageType = "weather-updated"
	TypeWeatherDeleted           MessageType = "weather-deleted"
	TypeUserJoined               MessageType = "user-joined"
	TypeUserLeft                 MessageType = "user-left"
	TypeSessionUsers             MessageType = "session-users"
)

// Message is the envelope delivered to websocket clients.
type Message struct {
	Type      MessageType `json:"type"`
	Payload   any         `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// transportFrame is the envelope carried over the Redis channel between the
// publisher and the hubs. Exclude names a client that must not receive the
// fan-out; presence notices use it so a joining client is not told about
// itself.
type transportFrame struct {
	SessionID string  `json:"session_id"`
	Exclude   string  `json:"exclude,omitempty"`
	Message   Message `json:"message"`
}

// Broadcaster publishes one typed message to every subscriber of a campaign.
//
// Implementations must only be invoked after the corresponding write has
// committed: a failed operation never emits a broadcast.
type Broadcaster interface {
	Publish(ctx context.Context, sessionID string, messageType MessageType, payload any) error
}
