package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/accordhq/accord/types"
)

const (
	configName = ".accord"
	envPrefix  = "ACCORD"
)

// appConfig holds the unmarshaled application configuration. It is built
// once by InitConfig and read through GetConfig.
var appConfig types.AppConfig

var configValidate = validator.New()

// InitConfig reads the config file and environment variables. Credentials
// are optional: their absence selects the local fallback reviewers instead
// of preventing startup.
func InitConfig() {
	// Load .env first if present; missing files are fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g. ACCORD_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")

	projectConfigDir := viper.GetString("project.rootDir")
	if projectConfigDir == "" {
		projectConfigDir = ".accord"
	}

	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		if _, err := os.Stat(projectConfigDir); !os.IsNotExist(err) {
			viper.AddConfigPath(projectConfigDir) // ./.accord/.accord.yaml
			viper.SetConfigName(configName)
		} else {
			home, err := os.UserHomeDir()
			cobra.CheckErr(err)
			viper.AddConfigPath(home) // $HOME/.accord.yaml
			viper.AddConfigPath(".")
			viper.SetConfigName(configName)
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	viper.SetDefault("project.rootDir", ".accord")
	viper.SetDefault("project.tasksDir", "tasks")
	viper.SetDefault("data.file", "tasks.json")
	viper.SetDefault("data.format", "json")
	viper.SetDefault("cycle.dryRun", true)
	viper.SetDefault("cycle.autoPush", false)
	viper.SetDefault("cycle.minConfidence", 0.7)
	viper.SetDefault("agents.agentA.provider", "")
	viper.SetDefault("agents.agentB.provider", "")

	if err := viper.Unmarshal(&appConfig); err != nil {
		HandleFatalError("Failed to load configuration.", err)
	}
	if err := configValidate.Struct(&appConfig); err != nil {
		HandleFatalError("Configuration is invalid.", err)
	}
}

// GetConfig returns the application configuration built by InitConfig.
func GetConfig() *types.AppConfig {
	return &appConfig
}
