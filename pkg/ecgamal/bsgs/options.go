package bsgs

// Option customizes table construction.
type Option func(*options)

type options struct {
	babySteps uint64
	workers   int
}

// WithBabySteps fixes the number of baby steps instead of deriving it from
// the capacity. Lookups then take ceil(capacity/n) giant steps at most.
func WithBabySteps(n uint64) Option {
	return func(o *options) {
		o.babySteps = n
	}
}

// WithWorkers sets how many goroutines compute baby steps. The default is the
// Library worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
