package jwtx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeyProvider resolves a verification key by kid.
type KeyProvider interface {
	Key(ctx context.Context, kid string) (any, error)
}

// KeySet holds public verification keys in memory. It is safe for
// concurrent use.
type KeySet struct {
	mu  sync.RWMutex
	pub map[string]any // kid: *rsa.PublicKey
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{pub: make(map[string]any)}
}

// AddJWK adds a JWK to the KeySet and parses it into a usable crypto key.
func (k *KeySet) AddJWK(j JWK) error {
	key, err := parseJWKToKey(j)
	if err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pub[j.Kid] = key
	return nil
}

// Get returns the public key for the given kid.
func (k *KeySet) Get(kid string) (any, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if pk, ok := k.pub[kid]; ok {
		return pk, nil
	}
	return nil, ErrNoKey
}

// Key implements KeyProvider.
func (k *KeySet) Key(_ context.Context, kid string) (any, error) {
	key, err := k.Get(kid)
	if err != nil {
		return nil, ErrUnknownKID
	}
	return key, nil
}

// IsReady returns true if the KeySet has at least one key loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pub) > 0
}

// ResetFromJWKS replaces all keys from a JWKS. Keys of unsupported types are
// skipped so one exotic entry cannot take down verification.
func (k *KeySet) ResetFromJWKS(jwks JWKS) error {
	next := make(map[string]any, len(jwks.Keys))
	for _, j := range jwks.Keys {
		key, err := parseJWKToKey(j)
		if err != nil {
			continue
		}
		next[j.Kid] = key
	}
	if len(next) == 0 {
		return errors.New("jwtx: JWKS contains no usable keys")
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.pub = next
	return nil
}

// RemoteKeySet lazily fetches a JWKS document over HTTP and refreshes it when
// it ages out or an unknown kid is requested.
type RemoteKeySet struct {
	URL        string
	HTTPClient *http.Client

	// MaxAge is how long a fetched set is trusted before refetching.
	MaxAge time.Duration
	// MinRefreshInterval throttles refetches triggered by unknown kids.
	MinRefreshInterval time.Duration

	keys *KeySet

	mu        sync.Mutex
	fetchedAt time.Time
	now       func() time.Time
}

// NewRemoteKeySet creates a key set backed by the JWKS at url.
func NewRemoteKeySet(url string) *RemoteKeySet {
	return &RemoteKeySet{
		URL:                url,
		HTTPClient:         &http.Client{Timeout: 10 * time.Second},
		MaxAge:             time.Hour,
		MinRefreshInterval: time.Minute,
		keys:               NewKeySet(),
		now:                time.Now,
	}
}

// Key implements KeyProvider.
func (r *RemoteKeySet) Key(ctx context.Context, kid string) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stale := r.fetchedAt.IsZero() || now.Sub(r.fetchedAt) > r.MaxAge
	if !stale {
		if key, err := r.keys.Get(kid); err == nil {
			return key, nil
		}
		// Unknown kid on a fresh set: keys may have rotated.
		stale = now.Sub(r.fetchedAt) > r.MinRefreshInterval
	}

	if stale {
		if err := r.refreshLocked(ctx); err != nil {
			return nil, err
		}
	}

	key, err := r.keys.Get(kid)
	if err != nil {
		return nil, ErrUnknownKID
	}
	return key, nil
}

func (r *RemoteKeySet) refreshLocked(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return fmt.Errorf("jwtx: build JWKS request: %w", err)
	}
	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("jwtx: fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwtx: fetch JWKS: unexpected status %d", resp.StatusCode)
	}

	var jwks JWKS
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&jwks); err != nil {
		return fmt.Errorf("jwtx: decode JWKS: %w", err)
	}
	if err := r.keys.ResetFromJWKS(jwks); err != nil {
		return err
	}
	r.fetchedAt = r.now()
	return nil
}
