package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/pkg/ptr"
)

const ttl = 30 * time.Minute

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, ttl), mr
}

func ticket(qty int) domain.BookingItem {
	return domain.BookingItem{ID: "i1", Type: domain.ItemTicket, ReferenceID: "t1", Title: "Adult Entry", Quantity: qty}
}

func TestStore_SaveGetDelete(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "tok")
	require.ErrorIs(t, err, ErrCartNotFound)

	require.NoError(t, store.Save(ctx, &domain.Cart{Token: "tok", UserID: "u1", Items: []domain.BookingItem{ticket(2)}}))
	assert.Equal(t, ttl, mr.TTL("cart:tok"))

	cart, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", cart.UserID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	require.NoError(t, store.Delete(ctx, "tok"))
	require.NoError(t, store.Delete(ctx, "tok"))
	_, err = store.Get(ctx, "tok")
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestStore_Expires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &domain.Cart{Token: "tok", UserID: "u1"}))

	mr.FastForward(ttl + time.Second)

	_, err := store.Get(ctx, "tok")
	require.ErrorIs(t, err, ErrCartNotFound)
	_, err = store.Update(ctx, "tok", func(*domain.Cart) error { return nil })
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestStore_GetCorrupted(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, mr.Set("cart:tok", "{not json"))

	_, err := store.Get(context.Background(), "tok")
	require.ErrorIs(t, err, ErrDecode)
}

func TestStore_Update(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &domain.Cart{Token: "tok", UserID: "u1"}))
	mr.FastForward(10 * time.Minute)

	cart, err := store.Update(ctx, "tok", func(c *domain.Cart) error {
		c.AddItem(ticket(1))
		return nil
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, ttl, mr.TTL("cart:tok"))

	saved, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, cart.Items, saved.Items)
}

func TestStore_UpdateRejectedChangeIsNotSaved(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &domain.Cart{Token: "tok", UserID: "u1", Items: []domain.BookingItem{ticket(1)}}))

	rejected := errors.New("cart is full")
	_, err := store.Update(ctx, "tok", func(c *domain.Cart) error {
		c.Items = nil
		return rejected
	})
	require.ErrorIs(t, err, rejected)

	saved, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Len(t, saved.Items, 1)
}

func TestStore_UpdateRetriesAfterConcurrentWrite(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &domain.Cart{Token: "tok", UserID: "u1", Items: []domain.BookingItem{ticket(1)}}))

	calls := 0
	cart, err := store.Update(ctx, "tok", func(c *domain.Cart) error {
		calls++
		if calls == 1 {
			// другой запрос успевает записать купон между чтением и записью
			other, err := store.Get(ctx, "tok")
			require.NoError(t, err)
			other.CouponCode = ptr.Ptr("SAVE5")
			require.NoError(t, store.Save(ctx, other))
		}
		c.AddItem(ticket(2))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "SAVE5", ptr.Value(cart.CouponCode))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	saved, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "SAVE5", ptr.Value(saved.CouponCode))
	assert.Equal(t, 3, saved.Items[0].Quantity)
}

func TestStore_UpdateGivesUpUnderContention(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &domain.Cart{Token: "tok", UserID: "u1"}))

	calls := 0
	_, err := store.Update(ctx, "tok", func(c *domain.Cart) error {
		calls++
		// каждую попытку кто-то перезаписывает корзину
		require.NoError(t, store.Save(ctx, &domain.Cart{Token: "tok", UserID: "u1"}))
		return nil
	})
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, maxUpdateAttempts, calls)
}
