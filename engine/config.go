package engine

import (
	"errors"
	"fmt"

	"github.com/AltGrid/viatext-core-sub000/logger"
	"github.com/AltGrid/viatext-core-sub000/wire"
)

// Default policy values.
const (
	// DefaultQueueSize is the capacity of the inbound and outbound queues.
	DefaultQueueSize = 8

	// DefaultDedupWindow is the capacity of the duplicate-sequence ring.
	DefaultDedupWindow = 32

	// DefaultHopLimit accepts every hop count the 4-bit field can carry.
	DefaultHopLimit = wire.MaxHops

	// DefaultFragmentSlots is the number of multi-part messages the fragment
	// gate will park.
	DefaultFragmentSlots = 4
)

// MaxQueueSize bounds the configurable queue capacity.
const MaxQueueSize = 64

type config struct {
	queueSize     int
	dedupWindow   int
	hopLimit      uint8
	fragmentSlots int
	logger        logger.Logger
}

// Option is a functional option for configuring an Engine.
type Option interface {
	apply(*config) error
}

type optFunc func(*config) error

func (f optFunc) apply(cfg *config) error { return f(cfg) }

// WithQueueSize sets the capacity of the inbound and outbound queues.
func WithQueueSize(size int) Option {
	return optFunc(func(cfg *config) error {
		if size < 1 || size > MaxQueueSize {
			return fmt.Errorf("engine: queue size %d out of range [1, %d]", size, MaxQueueSize)
		}
		cfg.queueSize = size
		return nil
	})
}

// WithDedupWindow sets the capacity of the duplicate-sequence ring.
func WithDedupWindow(size int) Option {
	return optFunc(func(cfg *config) error {
		if size < 1 {
			return errors.New("engine: dedup window must be >= 1")
		}
		cfg.dedupWindow = size
		return nil
	})
}

// WithHopLimit sets the hop-limit policy. Messages whose header hop count
// exceeds the limit are dropped. Must be in [0, 15].
func WithHopLimit(limit uint8) Option {
	return optFunc(func(cfg *config) error {
		if limit > wire.MaxHops {
			return fmt.Errorf("engine: hop limit %d exceeds maximum %d", limit, wire.MaxHops)
		}
		cfg.hopLimit = limit
		return nil
	})
}

// WithFragmentSlots sets the fragment-capacity policy: how many multi-part
// messages the gate parks before dropping further ones.
func WithFragmentSlots(slots int) Option {
	return optFunc(func(cfg *config) error {
		if slots < 0 {
			return errors.New("engine: fragment slots must be >= 0")
		}
		cfg.fragmentSlots = slots
		return nil
	})
}

// WithLogger sets the logger for the engine.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *config) error {
		if l == nil {
			return errors.New("engine: logger must not be nil")
		}
		cfg.logger = l
		return nil
	})
}
