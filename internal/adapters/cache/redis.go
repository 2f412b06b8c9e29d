package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// StreamClient is the subset of the redis client used by StreamSink
type StreamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// redisNewClient builds the client; tests override it.
var redisNewClient = func(opt *redis.Options) StreamClient {
	return redis.NewClient(opt)
}

// NewRedisClient connects to redis and verifies the connection with a ping
func NewRedisClient(ctx context.Context, addr, password string, db int) (StreamClient, error) {
	client := redisNewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// StreamSink appends flat records to a capped redis stream
type StreamSink struct {
	client StreamClient
	stream string
	maxLen int64
}

// NewStreamSink creates a sink writing to stream. maxLen <= 0 leaves the stream uncapped.
func NewStreamSink(client StreamClient, stream string, maxLen int64) *StreamSink {
	return &StreamSink{client: client, stream: stream, maxLen: maxLen}
}

// Append adds values as one stream entry, trimming the stream approximately to maxLen
func (s *StreamSink) Append(ctx context.Context, values map[string]interface{}) error {
	if s == nil || s.client == nil {
		return nil
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: values,
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	return s.client.XAdd(ctx, args).Err()
}
