package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tableside/order-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const statusChannelPrefix = "order-status:"

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) MenuKey(restaurantID int) string {
	return "menu:" + strconv.Itoa(restaurantID)
}

// GetMenu reports false on a cache miss.
func (c *RedisCache) GetMenu(ctx context.Context, restaurantID int) (*domain.Menu, bool, error) {
	raw, err := c.Client.Get(ctx, c.MenuKey(restaurantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var menu domain.Menu
	if err := json.Unmarshal(raw, &menu); err != nil {
		return nil, false, err
	}
	return &menu, true, nil
}

func (c *RedisCache) SetMenu(ctx context.Context, menu *domain.Menu) error {
	payload, err := json.Marshal(menu)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.MenuKey(menu.RestaurantID), payload, c.TTL).Err()
}

func (c *RedisCache) InvalidateMenu(ctx context.Context, restaurantID int) error {
	return c.Client.Del(ctx, c.MenuKey(restaurantID)).Err()
}

// RedisStatusChannel carries status events between service instances.
type RedisStatusChannel struct {
	Client *redis.Client
}

func NewRedisStatusChannel(client *redis.Client) *RedisStatusChannel {
	return &RedisStatusChannel{Client: client}
}

func StatusChannel(orderID int) string {
	return statusChannelPrefix + strconv.Itoa(orderID)
}

func (c *RedisStatusChannel) PublishStatus(ctx context.Context, event domain.StatusEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return c.Client.Publish(ctx, StatusChannel(event.OrderID), payload).Err()
}

// Listen blocks, passing every status event to handle until ctx is done.
// Malformed payloads are reported through onError and skipped. When the
// subscription is re-established after a dropped connection, onError gets
// domain.ErrEventsMissed. ready, if non-nil, is closed once the subscription
// is established.
func (c *RedisStatusChannel) Listen(ctx context.Context, handle func(domain.StatusEvent), onError func(error), ready chan<- struct{}) error {
	sub := c.Client.PSubscribe(ctx, statusChannelPrefix+"*")
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}

	messages := sub.ChannelWithSubscriptions()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-messages:
			if !ok {
				return nil
			}
			switch msg := raw.(type) {
			case *redis.Subscription:
				if msg.Kind == "psubscribe" {
					onError(fmt.Errorf("resubscribed to %s: %w", msg.Channel, domain.ErrEventsMissed))
				}
			case *redis.Message:
				var event domain.StatusEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					onError(err)
					continue
				}
				if id, err := strconv.Atoi(strings.TrimPrefix(msg.Channel, statusChannelPrefix)); err == nil && id != event.OrderID {
					onError(errors.New("status event order id does not match channel " + msg.Channel))
					continue
				}
				handle(event)
			}
		}
	}
}
