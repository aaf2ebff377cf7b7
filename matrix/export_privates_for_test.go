// SPDX-License-Identifier: MIT

package matrix

// OptionsSnapshot is a read-only copy of the resolved Options, exposed to the
// external test package.
type OptionsSnapshot struct {
	ValidateNaNInf bool
}

// GatherOptionsSnapshot_TestOnly resolves opts over the defaults.
func GatherOptionsSnapshot_TestOnly(opts ...Option) OptionsSnapshot {
	o := gatherOptions(opts...)

	return OptionsSnapshot{ValidateNaNInf: o.validateNaNInf}
}
