package server

import (
	"context"
	"testing"
	"time"

	"github.com/guardianeye/guardianeye/internal/server/config"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageBackend = config.StorageMemory
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.LogLevel = "error"
	return c
}

func TestNewApp_MemoryBackendRunsAndStops(t *testing.T) {
	app, err := NewApp(memoryConfig())
	require.NoError(t, err)
	require.Nil(t, app.db)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

func TestNewApp_UnknownStorageBackend(t *testing.T) {
	c := memoryConfig()
	c.StorageBackend = "mongo"

	_, err := NewApp(c)
	require.ErrorContains(t, err, `unknown storage backend "mongo"`)
}
