package config

// Environment names recognised by the service. Anything else is rejected at
// startup so a typo in MODSTUDIO_APP_ENV fails loudly instead of silently
// running with production defaults.
const (
	EnvLocal      = "local"
	EnvTest       = "test"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

func isKnownEnv(env string) bool {
	switch env {
	case EnvLocal, EnvTest, EnvStaging, EnvProduction:
		return true
	}
	return false
}
