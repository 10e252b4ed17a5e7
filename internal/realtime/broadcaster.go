package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aetherialcal/aethercal/internal/platform/constants"
)

// RedisBroadcaster publishes broadcast frames to the per-campaign Redis
// channel. Hubs on every API instance subscribe to the same channels, so the
// fan-out stays correct when more than one instance serves a campaign.
type RedisBroadcaster struct {
	client *redis.Client
}

func NewRedisBroadcaster(client *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{client: client}
}

// Publish implements [Broadcaster].
func (broadcaster *RedisBroadcaster) Publish(ctx context.Context, sessionID string, messageType MessageType, payload any) error {
	return broadcaster.publish(ctx, sessionID, "", messageType, payload)
}

// PublishExcluding publishes a frame that every room member except the named
// client receives. Used for presence notices.
func (broadcaster *RedisBroadcaster) PublishExcluding(ctx context.Context, sessionID, excludeClientID string, messageType MessageType, payload any) error {
	return broadcaster.publish(ctx, sessionID, excludeClientID, messageType, payload)
}

func (broadcaster *RedisBroadcaster) publish(ctx context.Context, sessionID, exclude string, messageType MessageType, payload any) error {
	frame := transportFrame{
		SessionID: sessionID,
		Exclude:   exclude,
		Message: Message{
			Type:      messageType,
			Payload:   payload,
			Timestamp: time.Now().UTC(),
		},
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("realtime: failed to marshal %s frame: %w", messageType, err)
	}

	channel := constants.RedisChannelPrefixCampaign + sessionID
	if err := broadcaster.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("realtime: failed to publish %s to %s: %w", messageType, channel, err)
	}

	return nil
}
