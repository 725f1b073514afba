package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/store"
	"github.com/globalgrad/counsellor/internal/counsel/store/drivers/sqlite"
	"github.com/globalgrad/counsellor/pkg/jwtx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "svc.db")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type fakeGoogle struct {
	claims jwtx.GoogleClaims
	err    error
}

func (f fakeGoogle) Verify(context.Context, string) (jwtx.GoogleClaims, error) {
	return f.claims, f.err
}

type recordingBus struct {
	mu     sync.Mutex
	events []domain.UniversityUpdate
	err    error
}

func (b *recordingBus) Publish(_ context.Context, _ int64, ev domain.UniversityUpdate) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
	return b.err
}

func (b *recordingBus) Subscribe(context.Context, int64) (<-chan domain.UniversityUpdate, func(), error) {
	return nil, nil, errors.New("not supported")
}

func (b *recordingBus) Close() error { return nil }

func str(s string) *string { return &s }
