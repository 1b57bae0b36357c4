package connection

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Config holds the pairing service client settings.
type Config struct {
	Addr        string        `env:"PAIRING_ADDR" envDefault:"localhost:9090"`
	DialTimeout time.Duration `env:"PAIRING_DIAL_TIMEOUT" envDefault:"10s"`
}

// DialStage describes where a dial attempt failed.
type DialStage string

const (
	DialStageConnect DialStage = "connect"
	DialStageHealth  DialStage = "health"
)

// DialError wraps dial and health check failures with a stage indicator.
type DialError struct {
	Stage DialStage
	Err   error
}

func (e *DialError) Error() string {
	return fmt.Sprintf("pairing service %s error: %v", e.Stage, e.Err)
}

func (e *DialError) Unwrap() error {
	return e.Err
}

// DefaultDialOptions returns the options every client channel is built with.
// The channel is plaintext.
func DefaultDialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// Dial connects to the pairing service at addr and waits until its health
// check reports SERVING or ctx ends. Extra options are applied after the
// defaults.
func Dial(ctx context.Context, addr string, logger *slog.Logger, opts ...grpc.DialOption) (*Connection, error) {
	cc, err := grpc.NewClient(addr, append(DefaultDialOptions(), opts...)...)
	if err != nil {
		return nil, &DialError{Stage: DialStageConnect, Err: err}
	}
	if err := WaitForHealth(ctx, cc, logger); err != nil {
		_ = cc.Close()
		return nil, &DialError{Stage: DialStageHealth, Err: err}
	}
	return New(cc), nil
}

// WaitForHealth blocks until the health check reports SERVING or ctx ends.
func WaitForHealth(ctx context.Context, cc grpc.ClientConnInterface, logger *slog.Logger) error {
	healthClient := grpc_health_v1.NewHealthClient(cc)
	backoff := 100 * time.Millisecond
	for {
		callCtx, cancel := context.WithTimeout(ctx, time.Second)
		resp, err := healthClient.Check(callCtx, &grpc_health_v1.HealthCheckRequest{})
		cancel()
		if err == nil && resp.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING {
			logger.Debug("pairing service is serving")
			return nil
		}
		if err != nil {
			logger.Info("waiting for pairing service", "error", err)
		} else {
			logger.Info("waiting for pairing service", "status", resp.GetStatus().String())
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for health: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff = min(2*backoff, time.Second)
	}
}
