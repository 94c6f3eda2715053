// Package profile loads study profiles: reusable run settings kept in a
// YAML file, typically next to the study data. Command line flags override
// anything a profile sets.
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/equiref/diverso/pkg/errors"
)

// Profile holds the per-study settings of a reconciliation run. Zero
// values mean "not set" and leave the corresponding default in place.
type Profile struct {
	// Survey is the path of the survey dataset
	Survey string `yaml:"survey"`

	// Recruitment is the path of the recruitment dataset
	Recruitment string `yaml:"recruitment"`

	// Output is the path the accumulated table is written to
	Output string `yaml:"output"`

	// PatientColumn names the patient identifier column
	PatientColumn string `yaml:"patient_column"`

	// HeightColumn names the centimeter height column to convert
	HeightColumn string `yaml:"height_column"`

	// Whitelist lists the columns that must match between runs before a
	// prior output is merged; empty means every column must match
	Whitelist []string `yaml:"whitelist"`

	// Backup controls whether the prior output is kept as a backup file;
	// nil keeps the default
	Backup *bool `yaml:"backup"`
}

// Load reads a profile file. Relative dataset paths inside the profile are
// resolved against the profile's own directory, so a profile can travel
// with its study folder.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.NewConfigError("profile", fmt.Sprintf("cannot parse %s: %v", path, err), err)
	}

	dir := filepath.Dir(path)
	p.Survey = resolve(dir, p.Survey)
	p.Recruitment = resolve(dir, p.Recruitment)
	p.Output = resolve(dir, p.Output)
	return &p, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
