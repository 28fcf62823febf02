package session

import "context"

// Config controls how a Session is constructed, with the default
// implementation as NewConfig. Values are immutable once built; each
// With* method returns a new Config, leaving the receiver untouched.
type Config struct {
	ctx     context.Context
	verbose bool
}

// defaultConfig holds every field's zero-risk default, so NewConfig never
// has to hand-initialize it field by field.
var defaultConfig = &Config{ctx: context.Background()}

// clone ensures all fields are copied even if new ones are added later.
func (c *Config) clone() *Config {
	ret := *c
	return &ret
}

// NewConfig returns a Config with default settings: a background context
// and verbose logging disabled.
func NewConfig() *Config {
	ret := defaultConfig.clone()
	return ret
}

// WithContext sets the context threaded through blocking calls (register
// polls, digit backoff) so callers can cancel a stuck MSM at the Go level
// even though the accelerator protocol itself has no cancellation.
func (c *Config) WithContext(ctx context.Context) *Config {
	if ctx == nil {
		ctx = context.Background()
	}
	ret := c.clone()
	ret.ctx = ctx
	return ret
}

// WithVerbose enables per-column progress logging on the session, used by
// the `column` and `msm` CLI subcommands' `-v` flag.
func (c *Config) WithVerbose(verbose bool) *Config {
	ret := c.clone()
	ret.verbose = verbose
	return ret
}
