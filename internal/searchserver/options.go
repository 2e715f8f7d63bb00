package searchserver

import (
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

const defaultAccumulatorShards = 64

// Option configures a SearchServer.
type Option func(*SearchServer)

func WithLogger(logger *slog.Logger) Option {
	return func(s *SearchServer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics instruments the server. A nil *Metrics disables recording.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *SearchServer) {
		s.metrics = m
	}
}

// WithWorkers bounds the goroutines used by the parallel policy. n <= 0
// means one per CPU.
func WithWorkers(n int) Option {
	return func(s *SearchServer) {
		s.workers = n
	}
}

// WithAccumulatorShards sets the bucket count of the parallel relevance
// accumulator.
func WithAccumulatorShards(n int) Option {
	return func(s *SearchServer) {
		if n > 0 {
			s.shards = n
		}
	}
}

// FromConfig applies the engine section of the application config. Stop
// words are not taken from cfg; they are passed to New.
func FromConfig(cfg config.EngineConfig) Option {
	return func(s *SearchServer) {
		WithWorkers(cfg.Workers)(s)
		WithAccumulatorShards(cfg.AccumulatorShards)(s)
	}
}
