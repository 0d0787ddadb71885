// Package config provides configuration management for the quarry CLI.
//
// Precedence, highest to lowest: flags > QUARRY_* environment variables >
// quarry.yaml > defaults. The project ID additionally honors the plain
// GCP_PROJECT_ID variable, with a hard-coded fallback, so the tool works
// against the demo project with zero setup.
package config

// Default configuration values.
const (
	DefaultProjectID = "bq-metadata-spike"
	DefaultLocation  = "us"
	DefaultBackend   = "bigquery"
	DefaultOutput    = "bigquery_metadata.json"
)

// DefaultDatasets lists the demo warehouse's datasets, in layer order.
var DefaultDatasets = []string{
	"raw_ecommerce",
	"staging_ecommerce",
	"analytics_ecommerce",
	"reporting_ecommerce",
}

// Config holds all CLI configuration options.
type Config struct {
	ProjectID string   `koanf:"project_id"`
	Location  string   `koanf:"location"`
	Datasets  []string `koanf:"datasets"`
	Backend   string   `koanf:"backend"`
	Database  string   `koanf:"database"`
	Output    string   `koanf:"output"`
	Verbose   bool     `koanf:"verbose"`

	// CredentialsFile comes from GOOGLE_APPLICATION_CREDENTIALS. Empty is
	// not an error: the backend falls back to application default
	// credentials, with a warning.
	CredentialsFile string `koanf:"-"`
}
