package inquiry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/calzalindo/catalog-backend/pkg/config"
	pkgerrors "github.com/calzalindo/catalog-backend/pkg/errors"
	"github.com/calzalindo/catalog-backend/pkg/redis"
)

// snapshot is the serialized cart state. The schema version and save
// timestamp let stale or incompatible carts be discarded on load.
type snapshot struct {
	Version string     `json:"schemaVersion"`
	SavedAt int64      `json:"savedAt"`
	Items   []LineItem `json:"items"`
}

// kv is the slice of the Redis client the store needs.
type kv interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	InquiryKey(cartID string) string
}

var _ kv = (*redis.Client)(nil)

// Store persists inquiry carts keyed by cart id.
type Store struct {
	kv  kv
	cfg config.InquiryConfig
	now func() time.Time
}

// NewStore builds a cart store on the shared Redis client.
func NewStore(client kv, cfg config.InquiryConfig) *Store {
	return &Store{kv: client, cfg: cfg, now: time.Now}
}

// Load returns the saved cart for the id. A missing key, unparseable
// payload, schema-version mismatch, or stale save all reset to an empty
// cart rather than surfacing an error.
func (s *Store) Load(ctx context.Context, cartID string) (*Cart, error) {
	raw, err := s.kv.Get(ctx, s.kv.InquiryKey(cartID))
	if err != nil {
		if redis.IsNil(err) {
			return NewCart(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: load inquiry cart")
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return NewCart(), nil
	}
	if snap.Version != s.cfg.SchemaVersion {
		return NewCart(), nil
	}
	if s.cfg.TTL > 0 && s.now().UnixMilli()-snap.SavedAt > s.cfg.TTL.Milliseconds() {
		return NewCart(), nil
	}

	cart := &Cart{Items: snap.Items}
	if cart.Items == nil {
		cart.Items = []LineItem{}
	}
	return cart, nil
}

// Save writes the cart under the configured schema version and TTL.
func (s *Store) Save(ctx context.Context, cartID string, cart *Cart) error {
	snap := snapshot{
		Version: s.cfg.SchemaVersion,
		SavedAt: s.now().UnixMilli(),
		Items:   cart.Items,
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal inquiry cart")
	}
	if err := s.kv.Set(ctx, s.kv.InquiryKey(cartID), payload, s.cfg.TTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: save inquiry cart")
	}
	return nil
}

// Delete removes the saved cart.
func (s *Store) Delete(ctx context.Context, cartID string) error {
	if err := s.kv.Del(ctx, s.kv.InquiryKey(cartID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: delete inquiry cart")
	}
	return nil
}
