// SPDX-License-Identifier: MIT

package config

// ApplyEnv exposes applyEnvOverrides with a map-backed lookup.
func ApplyEnv(c *Config, env map[string]string) error {
	return applyEnvOverrides(c, func(k string) (string, bool) {
		v, ok := env[k]

		return v, ok
	})
}
