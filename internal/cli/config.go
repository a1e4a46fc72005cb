package cli

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"codeberg.org/snonux/poai/internal/provider"
)

// InitConfig loads .env from the working directory and initializes viper
// configuration
func InitConfig(cfgFile string) {
	// Variables already in the environment win over .env.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env")
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			log.Warn().Err(err).Msg("Error getting home directory")
			return
		}

		// Search config in home directory with name ".poai" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".poai")
	}

	// Environment variables
	viper.SetEnvPrefix("POAI")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("Using config file")
	} else if cfgFile != "" {
		log.Warn().Err(err).Str("file", cfgFile).Msg("Failed to read config file")
	}
}

// GetAPIKey retrieves the API key of a provider from the environment or
// config. The config key is providers.<name>.api_key.
func GetAPIKey(name string) string {
	// First check environment variable
	if key := os.Getenv(provider.KeyEnv(name)); key != "" {
		return key
	}

	// Then check config file
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = provider.DefaultProvider
	}
	return viper.GetString("providers." + name + ".api_key")
}
