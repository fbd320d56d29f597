package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "lintai"

	// ConfigFileName is the default tool config file name
	ConfigFileName = ".lintai.toml"

	// AssertionsFileName is the default assertions config file name
	AssertionsFileName = "lintai.assertions.json"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "LINTAI"
)

// Output format constants
const (
	OutputFormatText     = "text"
	OutputFormatJSON     = "json"
	OutputFormatYAML     = "yaml"
	OutputFormatMarkdown = "markdown"
)

// Exit codes used by the check command
const (
	ExitPass     = 0
	ExitFail     = 1
	ExitRunError = 2
)
