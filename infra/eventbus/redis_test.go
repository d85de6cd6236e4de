package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/famledger/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedisBus starts a Redis container and returns a bus connected to it.
func setupRedisBus(tb testing.TB) *RedisEventBus {
	tb.Helper()
	if testing.Short() {
		tb.Skip("skipping redis container test in short mode")
	}
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7.2-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		tb.Skipf("docker unavailable: %v", err)
	}
	tb.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(tb, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(tb, err)

	bus, err := NewWithRedis("redis://"+host+":"+port.Port(), "famledger-events", "famledger", discardLogger())
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = bus.Close() })
	return bus
}

func TestRedisBusHandlerReceivesEvent(t *testing.T) {
	bus := setupRedisBus(t)

	received := make(chan uuid.UUID, 1)
	bus.Register(events.EventTypeTaskSettled.String(), func(_ context.Context, e events.Event) error {
		received <- e.(*events.TaskSettled).TaskID
		return nil
	})
	// The group is created at "$"; give the consumer a moment to start.
	time.Sleep(200 * time.Millisecond)

	want := uuid.New()
	require.NoError(t, bus.Emit(context.Background(), events.TaskCompleted{TaskID: uuid.New()}))
	require.NoError(t, bus.Emit(context.Background(), events.TaskSettled{TaskID: want}))

	select {
	case got := <-received:
		require.Equal(t, want, got)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}
