package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"winetrail/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrCartNotFound is returned for unknown or expired carts.
	ErrCartNotFound = errors.New("itinerary not found or expired")
	// ErrCartConflict is returned when concurrent writers kept winning the optimistic write.
	ErrCartConflict = errors.New("itinerary is being modified, try again")
)

const (
	cartKeyPrefix     = "cart:"
	maxMutateAttempts = 3
)

// Cart is the persisted form of a guest's itinerary.
type Cart struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId,omitempty"`
	Itinerary models.Itinerary `json:"itinerary"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// CartService persists itineraries between requests.
type CartService interface {
	Create(ctx context.Context, userID string) (*Cart, error)
	Load(ctx context.Context, cartID string) (*Cart, error)
	Mutate(ctx context.Context, cart *Cart, fn func(*Store) (bool, error)) (*Cart, bool, error)
}

// CartSessions keeps carts in Redis with a sliding TTL.
type CartSessions struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCartSessions returns a Redis-backed CartService.
func NewCartSessions(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CartSessions {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CartSessions{client: client, ttl: ttl, logger: logger}
}

// Create stores a new empty cart.
func (c *CartSessions) Create(ctx context.Context, userID string) (*Cart, error) {
	cart := &Cart{ID: uuid.New().String(), UserID: userID, UpdatedAt: time.Now()}
	if err := c.save(ctx, cart); err != nil {
		return nil, err
	}
	c.logger.Debug("itinerary created", zap.String("cartID", cart.ID))
	return cart, nil
}

// Load fetches a cart and refreshes its TTL.
func (c *CartSessions) Load(ctx context.Context, cartID string) (*Cart, error) {
	data, err := c.client.Get(ctx, cartKeyPrefix+cartID).Result()
	if err == redis.Nil {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load itinerary %s: %w", cartID, err)
	}
	var cart Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to parse itinerary %s: %w", cartID, err)
	}
	_ = c.client.Expire(ctx, cartKeyPrefix+cartID, c.ttl).Err()
	return &cart, nil
}

// Mutate runs fn over the current itinerary of cart and writes back only when the store
// changed. The write is optimistic: the key is watched while reading and the transaction
// is retried when another request saved the cart in between.
func (c *CartSessions) Mutate(ctx context.Context, cart *Cart, fn func(*Store) (bool, error)) (*Cart, bool, error) {
	key := cartKeyPrefix + cart.ID
	var (
		result  *Cart
		changed bool
	)
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return ErrCartNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load itinerary %s: %w", cart.ID, err)
		}
		var current Cart
		if err := json.Unmarshal([]byte(data), &current); err != nil {
			return fmt.Errorf("failed to parse itinerary %s: %w", cart.ID, err)
		}

		result = &current
		changed, err = applyToCart(&current, fn, time.Now())
		if err != nil || !changed {
			return err
		}
		payload, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("failed to marshal itinerary: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, c.ttl)
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= maxMutateAttempts; attempt++ {
		err := c.client.Watch(ctx, txf, key)
		if err == redis.TxFailedErr {
			c.logger.Debug("itinerary changed concurrently, retrying", zap.String("cartID", cart.ID), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return result, false, err
		}
		return result, changed, nil
	}
	return nil, false, ErrCartConflict
}

// applyToCart runs fn over a Store seeded with the cart's itinerary and commits the
// snapshot into cart when the store reports a change.
func applyToCart(cart *Cart, fn func(*Store) (bool, error), now time.Time) (bool, error) {
	store := NewStore(cart.Itinerary)
	changed, err := fn(store)
	if err != nil || !changed {
		return false, err
	}
	cart.Itinerary = store.Snapshot()
	cart.UpdatedAt = now
	return true, nil
}

func (c *CartSessions) save(ctx context.Context, cart *Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal itinerary: %w", err)
	}
	if err := c.client.Set(ctx, cartKeyPrefix+cart.ID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store itinerary: %w", err)
	}
	return nil
}

var _ CartService = (*CartSessions)(nil)
