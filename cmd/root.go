package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/vc-sourcer/internal/catalog"
)

const (
	app = "vc-sourcer"
)

type Config struct {
	VCFirm           string           `mapstructure:"vc-firm"`
	MaxStartups      int              `mapstructure:"max-startups"`
	MaxTalent        int              `mapstructure:"max-talent"`
	Platforms        []string         `mapstructure:"platforms"`
	Optimized        bool             `mapstructure:"optimized"`
	ExcludeFile      string           `mapstructure:"exclude-file"`
	ExcludeCompanies []string         `mapstructure:"exclude-companies"`
	ExcludePortfolio bool             `mapstructure:"exclude-portfolio"`
	DisabledFilters  []string         `mapstructure:"disabled-filters"`
	MinimumScore     float64          `mapstructure:"minimum-score"`
	Catalog          catalog.Options  `mapstructure:"catalog"`
	Directory        *DirectoryConfig `mapstructure:"directory"`
	Embedding        *EmbeddingConfig `mapstructure:"embedding"`
	Cache            *CacheConfig     `mapstructure:"cache"`
	Model            *ModelConfig     `mapstructure:"model"`
	Workers          *WorkersConfig   `mapstructure:"workers"`
}

type DirectoryConfig struct {
	BaseURL           string        `mapstructure:"base-url"`
	TokenFile         string        `mapstructure:"token-file"`
	RequestsPerMinute int           `mapstructure:"requests-per-minute"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxPages          int           `mapstructure:"max-pages"`
	UserAgent         string        `mapstructure:"user-agent"`
}

type EmbeddingConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
	Dimensions int    `mapstructure:"dimensions"`
}

type CacheConfig struct {
	Capacity int          `mapstructure:"capacity"`
	Redis    *RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PasswordFile string        `mapstructure:"password-file"`
	TTL          time.Duration `mapstructure:"ttl"`
}

type ModelConfig struct {
	Path string `mapstructure:"path"`
}

type WorkersConfig struct {
	BatchSize         int           `mapstructure:"batch-size"`
	BatchDelay        time.Duration `mapstructure:"batch-delay"`
	Concurrency       int           `mapstructure:"concurrency"`
	RequestsPerMinute int           `mapstructure:"requests-per-minute"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "vc-sourcer finds startups that match a venture firm's thesis and ranks them against its portfolio",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("directory.token-file", "VC_SOURCER_DIRECTORY_TOKEN_FILE"); err != nil {
		log.Fatalf("binding VC_SOURCER_DIRECTORY_TOKEN_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("embedding.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("cache.redis.url", "VC_SOURCER_REDIS_URL"); err != nil {
		log.Fatalf("binding VC_SOURCER_REDIS_URL environment variable: %v", err)
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is vc-sourcer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	viper.SetDefault("max-startups", 50)
	viper.SetDefault("max-talent", 5)
	viper.SetDefault("platforms", []string{"linkedin", "crunchbase", "twitter"})
	viper.SetDefault("directory.requests-per-minute", 20)
	viper.SetDefault("directory.timeout", 30*time.Second)
	viper.SetDefault("embedding.provider", "gemini")
	viper.SetDefault("embedding.gemini.max-retries", 3)
	viper.SetDefault("cache.capacity", 1000)
	viper.SetDefault("cache.redis.ttl", time.Hour)
	viper.SetDefault("model.path", "models/fit_model.json")
	viper.SetDefault("workers.batch-size", 10)
	viper.SetDefault("workers.batch-delay", 100*time.Millisecond)
	viper.SetDefault("workers.concurrency", 5)
	// one search every two seconds
	viper.SetDefault("workers.requests-per-minute", 30)
}

func initConfig() {
	if versionCmd.CalledAs() != "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	err := viper.ReadInConfig()
	if err == nil {
		return
	}

	// Without an explicit --config every setting has a default.
	var notFound viper.ConfigFileNotFoundError
	if cfgFile == "" && errors.As(err, &notFound) {
		return
	}

	// We can't proceed if the config file parsed with error.
	log.Fatal(err)
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

const firmHint = "pass it as an argument or set vc-firm in the configuration file"

// bindFlags binds flags of the running command to config keys. Several
// commands share keys, so binding happens once the command is known.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			viper.BindPFlag(key, f)
		}
	}
}

// firmFromArgs prefers the positional firm over the configured one.
func firmFromArgs(config *Config, args []string) string {
	if len(args) > 0 {
		return strings.TrimSpace(args[0])
	}
	return strings.TrimSpace(config.VCFirm)
}
