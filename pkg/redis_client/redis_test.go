package redis_client

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	server := miniredis.RunT(t)
	t.Setenv("TRAINSTATS_REDIS_ADDRESS", server.Addr())
	t.Setenv("TRAINSTATS_REDIS_DATABASE", "")

	require.NoError(t, Connect())
	t.Cleanup(func() { Client.Close() })

	assert.Equal(t, server.Addr(), Client.Options().Addr)
}

func TestConnectInvalidDatabase(t *testing.T) {
	t.Setenv("TRAINSTATS_REDIS_DATABASE", "first")

	assert.Error(t, Connect())
}
