package httptransport

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewServerAppliesConfig(t *testing.T) {
	handler := http.NewServeMux()
	server := NewServer(ServerConfig{
		Address:      ":9191",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}, handler)

	require.Equal(t, ":9191", server.Addr)
	require.Equal(t, 10*time.Second, server.ReadTimeout)
	require.Equal(t, 20*time.Second, server.WriteTimeout)
	require.Equal(t, 2*time.Minute, server.IdleTimeout)
}

func TestNewServerDefaultsZeroTimeouts(t *testing.T) {
	server := NewServer(ServerConfig{Address: ":8080"}, http.NewServeMux())

	require.Equal(t, defaultReadTimeout, server.ReadTimeout)
	require.Equal(t, defaultWriteTimeout, server.WriteTimeout)
	require.Equal(t, defaultIdleTimeout, server.IdleTimeout)
}
