package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort       string        `mapstructure:"HTTPPort"`
		Timeout        time.Duration `mapstructure:"HTTPTimeout"`
		AllowedOrigins []string      `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	GenerativeAI struct {
		Provider    string  `mapstructure:"provider"`
		Model       string  `mapstructure:"model"`
		APIKey      string  `mapstructure:"apiKey"`
		Temperature float32 `mapstructure:"temperature"`
		// BaseURL points the openai provider at a compatible endpoint.
		BaseURL string `mapstructure:"baseURL"`
	} `mapstructure:"generativeAI"`
	Geo struct {
		AutocompleteURL   string        `mapstructure:"autocompleteURL"`
		ReverseGeocodeURL string        `mapstructure:"reverseGeocodeURL"`
		UserAgent         string        `mapstructure:"userAgent"`
		Timeout           time.Duration `mapstructure:"timeout"`
		CacheTTL          time.Duration `mapstructure:"cacheTTL"`
	} `mapstructure:"geo"`
	Generation struct {
		MaxAttempts int `mapstructure:"maxAttempts"`
	} `mapstructure:"generation"`
	Auth struct {
		JWTSecret string `mapstructure:"jwtSecret"`
	} `mapstructure:"auth"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/usr/local/bin")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// VOYAGE_GENERATIVEAI_APIKEY overrides generativeAI.apiKey and so on.
	v.SetEnvPrefix("voyage")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	if config.Generation.MaxAttempts <= 0 {
		config.Generation.MaxAttempts = 7
	}
	if config.Server.Timeout <= 0 {
		config.Server.Timeout = 60 * time.Second
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
