package docq

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docq/internal/domain"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string
	db       int

	query domain.QueryConfig

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithDatabase selects the logical Redis database. Default: 0.
func WithDatabase(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = n
	})
}

// WithFullTextSearchFields sets the fields scanned by SearchTerm.
// Defaults to title and text.
func WithFullTextSearchFields(fields ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.query.FullTextSearchFields = fields
	})
}

// WithMaxResults caps the number of records a single fetch reads from the store.
func WithMaxResults(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.query.MaxResults = n
	})
}

// WithKeyPrefix sets the prefix of record keys and index names. Default: "docq:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.query.KeyPrefix = prefix
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
