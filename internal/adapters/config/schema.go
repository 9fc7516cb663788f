package config

// PolicyFile represents the structure of the optional policy.yaml overlay file.
type PolicyFile struct {
	Version string            `yaml:"version"`
	Deny    map[string]string `yaml:"deny"`
	Require []string          `yaml:"requireOverride"`
}
