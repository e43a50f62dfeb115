package config

// Config is the top-level configuration structure parsed from readqc YAML.
type Config struct {
	ReadQC ReadQC `yaml:"readqc"`
}

// ReadQC holds all readqc settings: tool invocation, gate policy, and the
// scan history database location.
type ReadQC struct {
	DBPath string `yaml:"db_path"`
	FastQC FastQC `yaml:"fastqc"`
	Gate   Gate   `yaml:"gate"`
}

// FastQC configures how the external fastqc tool is invoked.
type FastQC struct {
	Binary  string `yaml:"binary"`
	Threads int    `yaml:"threads"`
	OutDir  string `yaml:"out_dir"`
}

// Gate configures the status gate applied to parsed reports.
type Gate struct {
	// FailOn lists the status tokens that fail the gate.
	FailOn []string `yaml:"fail_on"`
	// RequiredModules must be present in every report; absence fails the gate.
	RequiredModules []string `yaml:"required_modules"`
}
