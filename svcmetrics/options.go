package svcmetrics

type config struct {
	namespace string
	buckets   []float64
}

// Option configures an [Observer] created by [New].
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) {
	f(c)
}

// WithNamespace sets the prefix of every metric name.
func WithNamespace(namespace string) Option {
	return optionFunc(func(c *config) {
		c.namespace = namespace
	})
}

// WithBuckets sets the buckets of the construction duration histogram.
func WithBuckets(buckets ...float64) Option {
	return optionFunc(func(c *config) {
		if len(buckets) > 0 {
			c.buckets = buckets
		}
	})
}
