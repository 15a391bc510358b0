package toast

import (
	"math"
	"time"
)

// Default timings.
const (
	DefaultDuration       = 1600 * time.Millisecond
	DefaultEntryDelay     = 10 * time.Millisecond
	DefaultExitDelay      = 400 * time.Millisecond
	DefaultProgressSettle = 100 * time.Millisecond
	DefaultContainerID    = "toast-container"
)

// MaxDurationMillis is the largest millisecond count a time.Duration holds.
const MaxDurationMillis = math.MaxInt64 / int64(time.Millisecond)

// Options controls a single toast.
type Options struct {
	// Duration until auto-dismiss. Zero or negative disables auto-dismiss.
	Duration time.Duration

	// Progress shows a shrinking progress bar while the toast is visible.
	// It has no effect when auto-dismiss is disabled.
	Progress bool

	// ClickToDismiss removes the toast when its body is clicked.
	ClickToDismiss bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Duration:       DefaultDuration,
		Progress:       true,
		ClickToDismiss: true,
	}
}

// AutoDismiss reports whether the toast removes itself after Duration.
func (o Options) AutoDismiss() bool {
	return o.Duration > 0
}

// Option overrides one field of the registry defaults.
type Option func(*Options)

// WithDuration sets the auto-dismiss delay. Zero disables auto-dismiss.
func WithDuration(d time.Duration) Option {
	return func(o *Options) {
		o.Duration = d
	}
}

// WithProgress enables or disables the progress bar. A toast without
// auto-dismiss never gets a bar, whatever this option says.
func WithProgress(enabled bool) Option {
	return func(o *Options) {
		o.Progress = enabled
	}
}

// WithClickToDismiss enables or disables dismissal by clicking the toast.
func WithClickToDismiss(enabled bool) Option {
	return func(o *Options) {
		o.ClickToDismiss = enabled
	}
}

// Config holds registry-wide settings.
type Config struct {
	// ContainerID is the id of the mounting surface element.
	ContainerID string

	// Defaults are the options every toast starts from. They are used as
	// given, so a zero value means no auto-dismiss, no progress bar and no
	// click-to-dismiss. Start from DefaultConfig to change single fields.
	Defaults Options

	// EntryDelay is the wait between mounting and the entry animation.
	EntryDelay time.Duration

	// ExitDelay is the wait between the exit animation and detaching.
	ExitDelay time.Duration

	// ProgressSettle is the wait before the progress bar starts shrinking.
	ProgressSettle time.Duration
}

// DefaultConfig returns the default registry configuration.
func DefaultConfig() Config {
	return Config{
		ContainerID:    DefaultContainerID,
		Defaults:       DefaultOptions(),
		EntryDelay:     DefaultEntryDelay,
		ExitDelay:      DefaultExitDelay,
		ProgressSettle: DefaultProgressSettle,
	}
}

// withDefaults fills the zero container id and delays. Defaults is left
// alone.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ContainerID == "" {
		c.ContainerID = def.ContainerID
	}
	if c.EntryDelay <= 0 {
		c.EntryDelay = def.EntryDelay
	}
	if c.ExitDelay <= 0 {
		c.ExitDelay = def.ExitDelay
	}
	if c.ProgressSettle <= 0 {
		c.ProgressSettle = def.ProgressSettle
	}
	return c
}
