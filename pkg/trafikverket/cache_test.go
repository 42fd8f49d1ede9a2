package trafikverket

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls  int
	result Result
	err    error
}

func (f *countingFetcher) Fetch(ctx context.Context, question string) (Result, error) {
	f.calls++
	return f.result, f.err
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return server, client
}

func TestCachedFetcherServesRepeatedQuestion(t *testing.T) {
	_, client := newTestRedis(t)

	upstream := &countingFetcher{result: Result{"TrainStation": json.RawMessage(`[{"LocationSignature":"Cst"}]`)}}
	fetcher := NewRedisCachedFetcher(upstream, client, time.Minute)

	first, err := fetcher.Fetch(context.Background(), "<REQUEST>a</REQUEST>")
	require.NoError(t, err)

	second, err := fetcher.Fetch(context.Background(), "<REQUEST>a</REQUEST>")
	require.NoError(t, err)

	assert.Equal(t, 1, upstream.calls)
	assert.JSONEq(t, string(first["TrainStation"]), string(second["TrainStation"]))
}

func TestCachedFetcherKeysOnExactQuestion(t *testing.T) {
	_, client := newTestRedis(t)

	upstream := &countingFetcher{result: Result{"TrainStation": json.RawMessage(`[]`)}}
	fetcher := NewRedisCachedFetcher(upstream, client, time.Minute)

	_, err := fetcher.Fetch(context.Background(), "<REQUEST>a</REQUEST>")
	require.NoError(t, err)
	_, err = fetcher.Fetch(context.Background(), "<REQUEST>a</REQUEST>\n")
	require.NoError(t, err)

	assert.Equal(t, 2, upstream.calls)
}

func TestCachedFetcherExpires(t *testing.T) {
	server, client := newTestRedis(t)

	upstream := &countingFetcher{result: Result{"TrainStation": json.RawMessage(`[]`)}}
	fetcher := NewRedisCachedFetcher(upstream, client, time.Minute)

	_, err := fetcher.Fetch(context.Background(), "<REQUEST/>")
	require.NoError(t, err)

	server.FastForward(2 * time.Minute)

	_, err = fetcher.Fetch(context.Background(), "<REQUEST/>")
	require.NoError(t, err)

	assert.Equal(t, 2, upstream.calls)
}

func TestCachedFetcherDoesNotCacheErrors(t *testing.T) {
	_, client := newTestRedis(t)

	upstream := &countingFetcher{err: &TransportError{Err: errors.New("connection refused")}}
	fetcher := NewRedisCachedFetcher(upstream, client, time.Minute)

	_, err := fetcher.Fetch(context.Background(), "<REQUEST/>")
	var transportError *TransportError
	require.ErrorAs(t, err, &transportError)

	upstream.err = nil
	upstream.result = Result{"TrainStation": json.RawMessage(`[]`)}

	result, err := fetcher.Fetch(context.Background(), "<REQUEST/>")
	require.NoError(t, err)
	assert.True(t, result.Has("TrainStation"))
	assert.Equal(t, 2, upstream.calls)
}

func TestCachedFetcherKeepsAPIKeyOutOfKeys(t *testing.T) {
	server, client := newTestRedis(t)

	question, err := NewClient(Config{APIKey: "secret-key"}).CreateQuestion(Question{ObjectType: "TrainStation"})
	require.NoError(t, err)

	upstream := &countingFetcher{result: Result{"TrainStation": json.RawMessage(`[]`)}}
	fetcher := NewRedisCachedFetcher(upstream, client, time.Minute)

	_, err = fetcher.Fetch(context.Background(), question)
	require.NoError(t, err)

	keys := server.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, cacheKey(question), keys[0])
	assert.False(t, strings.Contains(keys[0], "secret-key"))
}
