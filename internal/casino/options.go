package casino

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-casino/internal/playerid"
)

// Option configures the collaborators shared by registries, tables and engines.
type Option func(*runtime)

// runtime holds the collaborators every component publishes and logs through.
type runtime struct {
	bus    EventBus
	clock  quartz.Clock
	logger *log.Logger
	ids    IDGenerator
}

func newRuntime(opts []Option) runtime {
	rt := runtime{
		bus:    nopBus{},
		clock:  quartz.NewReal(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		ids:    playerid.NewGenerator(nil),
	}
	for _, opt := range opts {
		opt(&rt)
	}
	return rt
}

// options converts the runtime back into options so children inherit it.
func (rt runtime) options() []Option {
	return []Option{
		WithEventBus(rt.bus),
		WithClock(rt.clock),
		WithLogger(rt.logger),
		WithIDGenerator(rt.ids),
	}
}

// WithEventBus publishes announcements to bus.
func WithEventBus(bus EventBus) Option {
	return func(rt *runtime) {
		if bus != nil {
			rt.bus = bus
		}
	}
}

// WithClock stamps events using clock. Tests pass quartz.NewMock(t).
func WithClock(clock quartz.Clock) Option {
	return func(rt *runtime) {
		if clock != nil {
			rt.clock = clock
		}
	}
}

// WithLogger sets the parent logger.
func WithLogger(logger *log.Logger) Option {
	return func(rt *runtime) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithIDGenerator sets the identity factory used for new players.
func WithIDGenerator(ids IDGenerator) Option {
	return func(rt *runtime) {
		if ids != nil {
			rt.ids = ids
		}
	}
}
