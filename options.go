package reactive

import (
	"os"

	"github.com/rs/zerolog"
)

type schedulerConfig struct {
	logger  zerolog.Logger
	onFault func(*DeliveryFault)
}

// SchedulerOption configures a [GoroutineScheduler].
type SchedulerOption func(*schedulerConfig)

func newSchedulerConfig(opts []SchedulerOption) schedulerConfig {
	cfg := schedulerConfig{
		logger: zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.onFault == nil {
		logger := cfg.logger
		cfg.onFault = func(fault *DeliveryFault) {
			logger.Error().
				Err(fault).
				Str("stack", fault.Stack).
				Msg("unhandled delivery fault")
		}
	}
	return cfg
}

// WithLogger sets the logger used by the default fault handler. It has no
// effect when [WithFaultHandler] is also given.
func WithLogger(logger zerolog.Logger) SchedulerOption {
	return func(c *schedulerConfig) {
		c.logger = logger
	}
}

// WithFaultHandler replaces the default handling of delivery faults (log
// and drop the dispatcher). The handler runs on the goroutine the fault
// occurred on; it may re-panic to escalate.
//
// Panics if fn is nil.
func WithFaultHandler(fn func(*DeliveryFault)) SchedulerOption {
	if fn == nil {
		panic("reactive: WithFaultHandler requires non-nil handler")
	}
	return func(c *schedulerConfig) {
		c.onFault = fn
	}
}
