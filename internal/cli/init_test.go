package cli

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	applog "ledgerviz/internal/log"
)

func TestSetupLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	logger := SetupLogger(applog.ComponentWorker)
	if logger.Component() != applog.ComponentWorker {
		t.Errorf("component: %s", logger.Component())
	}
	if !logger.Enabled(context.Background(), -4) {
		t.Error("debug level not applied")
	}
}

func TestGracefulShutdown(t *testing.T) {
	logger := SetupLogger(applog.ComponentApp)
	cleaned := make(chan struct{})
	ctx, done := GracefulShutdown(logger, time.Second, func(context.Context) { close(cleaned) })

	if err := syscall.Kill(os.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatal(err)
	}

	finished := make(chan struct{})
	go func() {
		WaitForShutdown(ctx, done)
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(3 * time.Second):
		t.Fatal("shutdown did not complete")
	}
	select {
	case <-cleaned:
	default:
		t.Fatal("cleanup not run")
	}
}
