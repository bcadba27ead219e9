package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Language      string           `mapstructure:"language" validate:"required,language"`
	DataDirectory string           `mapstructure:"data_directory" validate:"required"`
	Cards         CardsConfig      `mapstructure:"cards"`
	Storage       StorageConfig    `mapstructure:"storage"`
	Progress      ProgressConfig   `mapstructure:"progress"`
	Lexicon       LexiconConfig    `mapstructure:"lexicon"`
	Database      DatabaseConfig   `mapstructure:"database"`
	Dictionary    DictionaryConfig `mapstructure:"dictionary"`
	Templates     TemplatesConfig  `mapstructure:"templates"`
	Outputs       OutputsConfig    `mapstructure:"outputs"`
}

type CardsConfig struct {
	// SeedCount is the number of lexicon words turned into cards on the first run.
	SeedCount int `mapstructure:"seed_count" validate:"gte=0"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=file mysql"`
}

type ProgressConfig struct {
	DefaultDailyLimit int `mapstructure:"default_daily_limit" validate:"gte=1"`
}

type LexiconConfig struct {
	// CSVFile is optional; the embedded word list is used when it is empty.
	CSVFile   string `mapstructure:"csv_file" validate:"omitempty,file"`
	CacheFile string `mapstructure:"cache_file"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port" validate:"gte=0,lte=65535"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type DictionaryConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	CacheDirectory string `mapstructure:"cache_directory"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1"`
	RetryAttempts  int    `mapstructure:"retry_attempts" validate:"gte=1"`
}

type TemplatesConfig struct {
	DeckTemplate string `mapstructure:"deck_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	ExportDirectory string `mapstructure:"export_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/flashcards")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("language", "es")
	v.SetDefault("data_directory", defaultDataDirectory())
	v.SetDefault("cards.seed_count", 100)
	v.SetDefault("storage.driver", "file")
	v.SetDefault("progress.default_daily_limit", 20)
	// Derived from data_directory when empty
	v.SetDefault("lexicon.csv_file", "")
	v.SetDefault("lexicon.cache_file", "")
	v.SetDefault("dictionary.cache_directory", "")
	v.SetDefault("outputs.export_directory", "")
	v.SetDefault("dictionary.base_url", "https://api.dictionaryapi.dev/api/v2/entries")
	v.SetDefault("dictionary.timeout_seconds", 10)
	v.SetDefault("dictionary.retry_attempts", 3)
	v.SetDefault("templates.deck_template", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "flashcards")
	v.SetDefault("database.username", "user")

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "FLASHCARDS_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind FLASHCARDS_DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, fmt.Errorf("validator.Struct() > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// Load reads the configuration file, or only the defaults when no file is found.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

func defaultDataDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "flashcards")
	}
	return filepath.Join(home, ".local", "share", "flashcards")
}
