package domain

// Config represents the diatonic configuration loaded from diatonic.yaml.
type Config struct {
	Defaults DefaultsConfig
	Paths    PathsConfig
}

type DefaultsConfig struct {
	Direction Direction
	Format    string
}

type PathsConfig struct {
	SheetsDir string
	RunsDir   string
}

// Output formats understood by the CLI.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// DefaultConfig provides sane defaults if diatonic.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			Direction: DefaultDirection,
			Format:    FormatPretty,
		},
		Paths: PathsConfig{
			SheetsDir: "sheets",
			RunsDir:   "runs",
		},
	}
}

// WorkspaceSpec describes where a workspace should be initialized.
type WorkspaceSpec struct {
	Root string
}
