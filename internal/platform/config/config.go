package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL        = "http://localhost:8001/api"
	DefaultTimeout        = 60 * time.Second
	DefaultFocusMinutes   = 25
	DefaultFlashcardCount = 5
)

type Config struct {
	APIBaseURL     string
	Timeout        time.Duration
	LogMode        string
	FocusMinutes   int
	FlashcardCount int
	ExportDir      string
	ConfigFile     string
}

// Load reads .studydesk.yaml (explicit path, $STUDYDESK_CONFIG_PATH,
// ~/.config/studydesk, then the working directory) and STUDYDESK_* env
// overrides. A missing config file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout.String())
	v.SetDefault("log.mode", "off")
	v.SetDefault("focus.minutes", DefaultFocusMinutes)
	v.SetDefault("flashcards.count", DefaultFlashcardCount)
	v.SetDefault("export.dir", ".")

	v.SetEnvPrefix("STUDYDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return Config{}, fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName(".studydesk")
		if override := os.Getenv("STUDYDESK_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "studydesk"))
		}
		v.AddConfigPath("./")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	exportDir, err := homedir.Expand(v.GetString("export.dir"))
	if err != nil {
		return Config{}, fmt.Errorf("expand export dir: %w", err)
	}
	cfg := Config{
		APIBaseURL:     strings.TrimRight(strings.TrimSpace(v.GetString("api.base_url")), "/"),
		Timeout:        v.GetDuration("api.timeout"),
		LogMode:        v.GetString("log.mode"),
		FocusMinutes:   v.GetInt("focus.minutes"),
		FlashcardCount: v.GetInt("flashcards.count"),
		ExportDir:      exportDir,
		ConfigFile:     v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute url", c.APIBaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.FocusMinutes <= 0 {
		return fmt.Errorf("focus.minutes must be positive")
	}
	if c.FlashcardCount <= 0 {
		return fmt.Errorf("flashcards.count must be positive")
	}
	return nil
}

func (c Config) FocusDuration() time.Duration {
	return time.Duration(c.FocusMinutes) * time.Minute
}
