package scaffold

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// MarkerFile is the name of the scaffold marker written into every
// generated project.
const MarkerFile = "create-express-app.yml"

// Marker records how a project was scaffolded.
type Marker struct {
	Version        string    `yaml:"version"`
	RunID          string    `yaml:"run_id"`
	Variant        string    `yaml:"variant"`
	Features       []string  `yaml:"features,omitempty"`
	PackageManager string    `yaml:"package_manager"`
	CreatedAt      time.Time `yaml:"created_at"`
}

// Encode renders the marker as YAML.
func (m Marker) Encode() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", MarkerFile, err)
	}
	return data, nil
}
