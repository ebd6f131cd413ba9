package config

// Config represents the global borrow configuration.
type Config struct {
	// DataDir is the root of the template cache.
	DataDir string `koanf:"data_dir"`
	// Prompt configuration for placeholder collection.
	Prompt PromptConfig `koanf:"prompt"`
	// Output configuration for display and logging.
	Output OutputConfig `koanf:"output"`
	// GitHub configuration for repository access.
	GitHub GitHubConfig `koanf:"github"`
}

// PromptConfig represents prompting settings.
type PromptConfig struct {
	// NonInteractive disables prompts; defaults and provided values are used.
	NonInteractive bool `koanf:"non_interactive"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `koanf:"color"`
	// Verbose enables info level logging.
	Verbose bool `koanf:"verbose"`
	// Quiet suppresses non-error output.
	Quiet bool `koanf:"quiet"`
}

// GitHubConfig represents GitHub-specific settings.
type GitHubConfig struct {
	// Token is the GitHub personal access token used for cloning.
	Token string `koanf:"token"`
}
