package cli

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/msfixture/pkg/types"
	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir       = "data_dir"
	cfgKeyProfileConfig = "profile_config"
	cfgKeyOutDir        = "out_dir"
	cfgKeyMaxMemory     = "max_memory"
	cfgKeyLogLevel      = "log_level"
	cfgKeySeed          = "seed"

	envLogLevel = "MSFIXTURE_LOG_LEVEL"
	envSeed     = "MSFIXTURE_SEED"
)

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml (or config directory) is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyProfileConfig, types.DefaultProfileConfig)
	v.SetDefault(cfgKeyMaxMemory, types.DefaultMaxMemory)
	v.SetDefault(cfgKeyLogLevel, types.DefaultLogLevel)
	v.SetDefault(cfgKeySeed, types.DefaultSeed)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.BindEnv(cfgKeyLogLevel, envLogLevel); err != nil {
		return nil, err
	}
	if err := v.BindEnv(cfgKeySeed, envSeed); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// configFromViper copies the known keys into a types.Config.
func configFromViper(v *viper.Viper) types.Config {
	return types.Config{
		DataDir:       v.GetString(cfgKeyDataDir),
		ProfileConfig: v.GetString(cfgKeyProfileConfig),
		OutDir:        v.GetString(cfgKeyOutDir),
		MaxMemory:     v.GetString(cfgKeyMaxMemory),
		LogLevel:      v.GetString(cfgKeyLogLevel),
		Seed:          v.GetUint64(cfgKeySeed),
	}
}
