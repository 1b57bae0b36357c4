package factory

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/mcoot/pairings-web/internal/connection"
	"github.com/mcoot/pairings-web/internal/dependencies/mocks"
	"github.com/mcoot/pairings-web/internal/rpc"
	"github.com/mcoot/pairings-web/internal/services/signing"
	"github.com/mcoot/pairings-web/internal/storage/memory"
	"github.com/mcoot/pairings-web/internal/testutil"
)

// TestSecret is the proof secret of every TestApp.
const TestSecret = "test-secret-0123456789"

const bufSize = 1 << 20

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom

	listener *bufconn.Listener
	server   *rpc.Server
	stop     context.CancelFunc
	done     chan error
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	signer, err := signing.New([]byte(TestSecret))
	if err != nil {
		panic(err)
	}

	app := newWithDependencies(store, mockClock, mockRandom, signer, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// Channel serves the backend over an in-memory listener, if not already
// serving, and opens a client channel to it. The server runs until Close.
func (t *TestApp) Channel() (*grpc.ClientConn, error) {
	if t.server == nil {
		t.listener = bufconn.Listen(bufSize)
		t.server = rpc.NewServer(t.listener, t.Controller, t.Logger)

		ctx, cancel := context.WithCancel(context.Background())
		t.stop = cancel
		t.done = make(chan error, 1)
		go func() {
			t.done <- t.server.Serve(ctx)
		}()
	}

	return grpc.NewClient("passthrough:///bufnet",
		append(connection.DefaultDialOptions(),
			grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
				return t.listener.DialContext(ctx)
			}),
		)...,
	)
}

// Connect returns a Connection to the in-memory backend.
func (t *TestApp) Connect() (*connection.Connection, error) {
	cc, err := t.Channel()
	if err != nil {
		return nil, err
	}
	return connection.New(cc), nil
}

// Close stops the server, if any, and releases the storage.
func (t *TestApp) Close() error {
	if t.stop != nil {
		t.stop()
		<-t.done
		t.stop = nil
	}
	return t.App.Close()
}
