package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayGuard_NilClientAcceptsEverything(t *testing.T) {
	guard := NewReplayGuard(nil, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		fresh, err := guard.Claim(ctx, "msg_1")
		require.NoError(t, err)
		assert.True(t, fresh)
	}
	assert.NoError(t, guard.Release(ctx, "msg_1"))
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	client, err := NewRedisClient(context.Background(), "not a url", "")
	assert.Error(t, err)
	assert.Nil(t, client)
}
