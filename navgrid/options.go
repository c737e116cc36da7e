package navgrid

import "errors"

// ErrStepBudgetExceeded is reported when a parent walk produces more nodes
// than its step budget allows, which means the closed list has a cycle that
// does not pass through its start node.
var ErrStepBudgetExceeded = errors.New("navgrid: step budget exceeded")

// Options defines parameters for path reconstruction.
type Options struct {
	// StepBudget caps the number of nodes a single parent walk may produce.
	// Zero means unbounded.
	StepBudget int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithStepBudget makes walks fail with ErrStepBudgetExceeded after n nodes
// instead of hanging on a malformed closed list.
func WithStepBudget(n int) Option {
	return func(options *Options) { options.StepBudget = n }
}

func applyOptions(options []Option) Options {
	opts := Options{}
	for _, option := range options {
		if option != nil {
			option(&opts)
		}
	}
	if opts.StepBudget < 0 {
		opts.StepBudget = 0
	}
	return opts
}
