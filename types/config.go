package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Cycle   CycleConfig   `mapstructure:"cycle"`
	Agents  AgentsConfig  `mapstructure:"agents"`
}

// ProjectConfig holds project-related settings.
type ProjectConfig struct {
	RootDir  string `mapstructure:"rootDir" validate:"required"`
	TasksDir string `mapstructure:"tasksDir" validate:"required"`
}

// DataConfig holds data storage configuration.
type DataConfig struct {
	File   string `mapstructure:"file" validate:"required"`
	Format string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// CycleConfig holds development-cycle defaults, overridable per invocation.
type CycleConfig struct {
	DryRun        bool    `mapstructure:"dryRun"`
	AutoPush      bool    `mapstructure:"autoPush"`
	MinConfidence float64 `mapstructure:"minConfidence" validate:"omitempty,min=0,max=1"`
}

// AgentsConfig holds the per-role LLM endpoint configuration.
type AgentsConfig struct {
	AgentA LLMConfig `mapstructure:"agentA"`
	AgentB LLMConfig `mapstructure:"agentB"`
}

// LLMConfig holds configuration for one completion endpoint. An empty
// provider or missing API key selects the local fallback reviewer; the
// process must start without credentials.
type LLMConfig struct {
	Provider  string  `mapstructure:"provider" validate:"omitempty,oneof=openai anthropic ollama"`
	ModelName string  `mapstructure:"modelName" validate:"omitempty,min=1"`
	APIKey    string  `mapstructure:"apiKey"`
	BaseURL   string  `mapstructure:"baseUrl"`
	// Temperature is applied at model construction time.
	Temperature float64 `mapstructure:"temperature" validate:"omitempty,min=0,max=2"`
	// RequestTimeoutSeconds bounds one completion call before falling back.
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
}
