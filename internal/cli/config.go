package cli

import (
	"github.com/mcoot/pairings-web/internal/config"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string `env:"PAIRINGS_SERVER" envDefault:"http://localhost:8080"`
	Output    string `env:"PAIRINGS_OUTPUT" envDefault:"text"`
	Verbose   bool   `env:"PAIRINGS_VERBOSE"`
}

// LoadConfig returns a Config populated from the environment. Flags
// override these values.
func LoadConfig() (*Config, error) {
	c := &Config{}
	if err := config.ParseEnv(c); err != nil {
		return nil, err
	}
	return c, nil
}
