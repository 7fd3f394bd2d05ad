package platform

// Config holds configuration for the remote entity platform client.
type Config struct {
	// BaseURL is the platform API endpoint.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:9090"`
	// ApiKey is the bearer token for platform requests.
	ApiKey string `mapstructure:"api_key" default:""`
	// DefaultLabel is the label unioned into every legacy entity's
	// declared labels during sync.
	DefaultLabel string `mapstructure:"default_label" default:"migrated"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
