package sendprop

// defaultMaxArrayPreallocate is the default initial capacity reserve for a
// decoded array (spec.md §4.4 "Array" and §5 resource policy): defense
// against an adversarial count field forcing a huge up-front allocation. The
// clamp affects only the initial reserve — the final decoded length always
// equals the declared count.
const defaultMaxArrayPreallocate = 128

// Option tunes non-semantic behavior of ParseValue (SPEC_FULL.md §4.6
// "[AMBIENT] Parse options"). Defaults reproduce spec.md's described behavior exactly.
type Option func(*parseConfig)

type parseConfig struct {
	maxArrayPreallocate int
}

func newParseConfig(opts []Option) parseConfig {
	cfg := parseConfig{maxArrayPreallocate: defaultMaxArrayPreallocate}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithMaxArrayPreallocate overrides the default 128-element preallocation
// clamp. It never changes a decode's result, only the initial slice capacity
// reserved before the decode loop runs.
func WithMaxArrayPreallocate(n int) Option {
	return func(c *parseConfig) {
		c.maxArrayPreallocate = n
	}
}
