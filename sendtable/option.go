package sendtable

// Option tunes non-semantic behavior of Read (SPEC_FULL.md §4.6 "[AMBIENT]
// Parse options"). Defaults reproduce spec.md's described
// behavior exactly; options exist only to make a stricter validator possible
// without forking the reader, the same motivation behind mebo's
// blob.With*Option constructors.
type Option func(*readConfig)

type readConfig struct {
	strictFlags bool
}

func newReadConfig(opts []Option) readConfig {
	var cfg readConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithStrictFlags rejects a raw definition carrying unrecognized flag bits
// instead of silently masking them to the recognized set.
func WithStrictFlags() Option {
	return func(c *readConfig) {
		c.strictFlags = true
	}
}
