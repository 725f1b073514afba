package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

func startRedis(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in -short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	endpoint, err := container.PortEndpoint(ctx, "6379/tcp", "redis")
	require.NoError(t, err)
	return endpoint
}

func TestRedisBus_PublishSubscribe(t *testing.T) {
	url := startRedis(t)
	ctx := context.Background()

	// Two buses model the API and agent processes.
	api, err := NewRedisBus(ctx, url, slogx.Discard())
	require.NoError(t, err)
	defer api.Close()
	agent, err := NewRedisBus(ctx, url, slogx.Discard())
	require.NoError(t, err)
	defer agent.Close()

	ch, cancel, err := api.Subscribe(ctx, 42)
	require.NoError(t, err)

	ev := domain.NewUniversityUpdate(domain.ActionLock, "canada-1")
	require.NoError(t, agent.Publish(ctx, 42, ev))
	require.Equal(t, ev, recv(t, ch))

	cancel()
	requireClosed(t, ch)
}

func TestRedisBus_BadURL(t *testing.T) {
	_, err := NewRedisBus(context.Background(), "not a url", slogx.Discard())
	require.Error(t, err)
}
