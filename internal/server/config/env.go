package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays Config fields from environment variables using the env
// struct tags (DATABASE_URL, JWT_SECRET, TOKEN_DURATION, SMTP_*, EMAIL_*).
// Unset variables leave the current values untouched.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
