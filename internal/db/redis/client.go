package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/docq/internal/db"
)

var _ db.Store = (*Store)(nil)

const (
	readyMinBackoff = 50 * time.Millisecond
	readyMaxBackoff = time.Second
)

// Config holds connection parameters for a Redis store.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	// ClientName is sent via CLIENT SETNAME on every connection.
	ClientName string
}

// Store implements db.Store on rueidis. It needs a server with the query
// engine loaded (Redis 8+ or Redis Stack).
type Store struct {
	client rueidis.Client
}

// NewStore dials Redis. Connection errors surface here or on the first command.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("redis: addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		ClientName:   cfg.ClientName,
		DisableCache: true,
		AlwaysRESP2:  true, // FT.SEARCH replies are parsed as RESP2 arrays
	})
	if err != nil {
		return nil, fmt.Errorf("redis: connect %s: %w", strings.Join(cfg.Addrs, ","), err)
	}

	return &Store{client: client}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.do(ctx, s.b().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady pings with doubling backoff until the server answers or
// timeout expires. The returned error wraps both the deadline and the last
// ping failure.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	backoff := readyMinBackoff
	for {
		lastErr := s.Ping(ctx)
		if lastErr == nil {
			return nil
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("database not ready: %w (last error: %w)", ctx.Err(), lastErr)
		case <-timer.C:
		}
		backoff = min(backoff*2, readyMaxBackoff)
	}
}

func (s *Store) do(ctx context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	return s.client.Do(ctx, cmd)
}

func (s *Store) b() rueidis.Builder {
	return s.client.B()
}

// isRedisErr reports whether err is a server reply containing substr, ignoring case.
func isRedisErr(err error, substr string) bool {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(re.Error()), strings.ToLower(substr))
}
