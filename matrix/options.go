// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of the numeric policy.
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
package matrix

// ---------- Defaults (single source of truth) ----------

// DefaultValidateNaNInf toggles strict finite-value validation in Set.
const DefaultValidateNaNInf = true

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
type Option func(*Options)

// Options is the resolved configuration. Fields are unexported; use WithX.
type Options struct {
	validateNaNInf bool // DefaultValidateNaNInf
}

// WithValidateNaNInf makes Set reject NaN and ±Inf (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithAllowNonFinite makes Set accept NaN and ±Inf; distance matrices use it.
func WithAllowNonFinite() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		validateNaNInf: DefaultValidateNaNInf,
	}
}

// gatherOptions applies opts over the defaults in order; nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
