// SPDX-License-Identifier: MIT

package cache

import "time"

// SetClock replaces the Memory clock.
func (c *Memory) SetClock(now func() time.Time) { c.now = now }
