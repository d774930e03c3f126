package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
)

const (
	keyPrefix = "cart:"

	// maxUpdateAttempts попыток оптимистичного обновления под WATCH
	maxUpdateAttempts = 5
)

// Client команды Redis и оптимистичные транзакции. *redis.Client подходит.
type Client interface {
	redis.Cmdable
	Watch(ctx context.Context, fn func(*redis.Tx) error, keys ...string) error
}

// Store хранилище корзин в Redis. Корзина хранится одним JSON значением,
// каждое сохранение продлевает TTL.
type Store struct {
	client Client
	ttl    time.Duration
}

// NewStore создает новое хранилище корзин
func NewStore(client Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// TTL время жизни корзины
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get получает корзину по токену
func (s *Store) Get(ctx context.Context, token string) (*domain.Cart, error) {
	data, err := s.client.Get(ctx, key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - token=%s: %w", ErrRedis, token, err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("%w: Get - token=%s: %w", ErrDecode, token, err)
	}

	return &cart, nil
}

// Save сохраняет корзину и продлевает её срок жизни
func (s *Store) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("%w: Save - token=%s: %w", ErrEncode, cart.Token, err)
	}

	if err := s.client.Set(ctx, key(cart.Token), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - token=%s: %w", ErrRedis, cart.Token, err)
	}

	return nil
}

// Update читает корзину, применяет fn и записывает результат, если ключ
// не изменился между чтением и записью. При гонке fn вызывается заново на свежей корзине.
// Ошибка fn возвращается как есть, корзина при этом не сохраняется.
func (s *Store) Update(ctx context.Context, token string, fn func(cart *domain.Cart) error) (*domain.Cart, error) {
	k := key(token)
	var updated *domain.Cart

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrCartNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: Update - token=%s: %w", ErrRedis, token, err)
		}

		var cart domain.Cart
		if err := json.Unmarshal(data, &cart); err != nil {
			return fmt.Errorf("%w: Update - token=%s: %w", ErrDecode, token, err)
		}

		if err := fn(&cart); err != nil {
			return err
		}

		encoded, err := json.Marshal(&cart)
		if err != nil {
			return fmt.Errorf("%w: Update - token=%s: %w", ErrEncode, token, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, encoded, s.ttl)
			return nil
		})
		if err != nil {
			if errors.Is(err, redis.TxFailedErr) {
				return err
			}
			return fmt.Errorf("%w: Update - token=%s: %w", ErrRedis, token, err)
		}

		updated = &cart
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, k)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: Update - token=%s, attempts=%d", ErrConflict, token, maxUpdateAttempts)
}

// Delete удаляет корзину. Отсутствие корзины не считается ошибкой.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - token=%s: %w", ErrRedis, token, err)
	}
	return nil
}

func key(token string) string {
	return keyPrefix + token
}
