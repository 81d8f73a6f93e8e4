package inquiry

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/calzalindo/catalog-backend/pkg/config"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryKV fakes the Redis slice the store uses.
type memoryKV struct {
	data map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string]string{}}
}

func (m *memoryKV) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	default:
		return fmt.Errorf("unexpected value type %T", value)
	}
	return nil
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	value, ok := m.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (m *memoryKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryKV) InquiryKey(cartID string) string {
	return "clz:inquiry:" + cartID
}

func testInquiryConfig() config.InquiryConfig {
	return config.InquiryConfig{
		SchemaVersion:  "1",
		TTL:            7 * 24 * time.Hour,
		WhatsAppNumber: "5491234567890",
	}
}

func TestStore_RoundTrip(t *testing.T) {
	kv := newMemoryKV()
	store := NewStore(kv, testInquiryConfig())
	ctx := context.Background()

	cart := NewCart()
	require.True(t, cart.Add(sampleItem("a", "ZAPA", "NEGRO", "38", 100)))
	require.NoError(t, store.Save(ctx, "cart-1", cart))

	loaded, err := store.Load(ctx, "cart-1")
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, "a", loaded.Items[0].ID)
}

func TestStore_MissingKeyIsEmptyCart(t *testing.T) {
	store := NewStore(newMemoryKV(), testInquiryConfig())

	cart, err := store.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, cart.Len())
	assert.NotNil(t, cart.Items)
}

func TestStore_CorruptPayloadResets(t *testing.T) {
	kv := newMemoryKV()
	kv.data[kv.InquiryKey("cart-1")] = "{not json"
	store := NewStore(kv, testInquiryConfig())

	cart, err := store.Load(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 0, cart.Len())
}

func TestStore_VersionMismatchResets(t *testing.T) {
	kv := newMemoryKV()
	payload, err := json.Marshal(snapshot{
		Version: "0",
		SavedAt: time.Now().UnixMilli(),
		Items:   []LineItem{sampleItem("a", "ZAPA", "NEGRO", "38", 100)},
	})
	require.NoError(t, err)
	kv.data[kv.InquiryKey("cart-1")] = string(payload)
	store := NewStore(kv, testInquiryConfig())

	cart, err := store.Load(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 0, cart.Len())
}

func TestStore_StaleSaveResets(t *testing.T) {
	kv := newMemoryKV()
	payload, err := json.Marshal(snapshot{
		Version: "1",
		SavedAt: time.Now().Add(-8 * 24 * time.Hour).UnixMilli(),
		Items:   []LineItem{sampleItem("a", "ZAPA", "NEGRO", "38", 100)},
	})
	require.NoError(t, err)
	kv.data[kv.InquiryKey("cart-1")] = string(payload)
	store := NewStore(kv, testInquiryConfig())

	cart, err := store.Load(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 0, cart.Len())
}

func TestStore_Delete(t *testing.T) {
	kv := newMemoryKV()
	store := NewStore(kv, testInquiryConfig())
	ctx := context.Background()

	cart := NewCart()
	require.True(t, cart.Add(sampleItem("a", "ZAPA", "NEGRO", "38", 100)))
	require.NoError(t, store.Save(ctx, "cart-1", cart))
	require.NoError(t, store.Delete(ctx, "cart-1"))

	loaded, err := store.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}
