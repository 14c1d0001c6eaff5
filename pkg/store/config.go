package store

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultPath          = "~/.mindease"
	defaultAutosaveDelay = 700 * time.Millisecond
)

// Config is the runtime configuration shared by the commands.
type Config interface {
	BasePath() string
	AutosaveDelay() time.Duration
	Debug() bool
	LogDir() string
}

// LoadConfig reads .mindease.yaml and MINDEASE_* environment variables.
// A .env file in the working directory is loaded first when present.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("autosave_delay", defaultAutosaveDelay)
	v.SetDefault("debug", false)
	v.SetDefault("log_dir", "")
	v.SetConfigName(".mindease") // .yaml is implicit
	v.SetEnvPrefix("MINDEASE")
	v.AutomaticEnv()

	if override := os.Getenv("MINDEASE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}
	logDir := v.GetString("log_dir")
	if logDir == "" {
		logDir = path
	}
	logDir, err = homedir.Expand(logDir)
	if err != nil {
		return nil, err
	}

	delay := v.GetDuration("autosave_delay")
	if delay <= 0 {
		delay = defaultAutosaveDelay
	}

	return &fileConfig{
		Path:     path,
		Autosave: delay,
		Verbose:  v.GetBool("debug"),
		Logs:     logDir,
	}, nil
}

type fileConfig struct {
	Path     string        `json:"path"`
	Autosave time.Duration `json:"autosave_delay"`
	Verbose  bool          `json:"debug"`
	Logs     string        `json:"log_dir"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) AutosaveDelay() time.Duration {
	return f.Autosave
}

func (f *fileConfig) Debug() bool {
	return f.Verbose
}

func (f *fileConfig) LogDir() string {
	return f.Logs
}
