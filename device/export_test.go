// SPDX-License-Identifier: MIT

package device

// Reset clears the registered provider and cached handle between tests.
var Reset = reset
