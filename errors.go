// SPDX-License-Identifier: MIT

package tsdist

import "errors"

// Error kinds shared by every package of the module. Package-level sentinels
// wrap one of these with fmt.Errorf("%w: ...") so callers may match either the
// precise sentinel or the kind.
var (
	// ErrInvalidParameter reports a caller-supplied numeric or enum parameter
	// (band, penalty sign, epsilon sign, device name, window, empty input)
	// outside its documented domain. Raised before any allocation.
	ErrInvalidParameter = errors.New("tsdist: invalid parameter")

	// ErrComputation reports an internal failure of the accelerated backend.
	ErrComputation = errors.New("tsdist: computation error")
)

// IsInvalidParameter reports whether err is, or wraps, ErrInvalidParameter.
func IsInvalidParameter(err error) bool { return errors.Is(err, ErrInvalidParameter) }

// IsComputation reports whether err is, or wraps, ErrComputation.
func IsComputation(err error) bool { return errors.Is(err, ErrComputation) }
