package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime settings of the web server.
type Config struct {
	Addr           string   `validate:"required"`
	SecretKey      string   `validate:"required,min=8"`
	LogLevel       string   `validate:"oneof=debug info warn error"`
	SeedDemo       bool
	RateLimitRPS   float64  `validate:"gt=0"`
	RateLimitBurst int      `validate:"gte=1"`
	MaxBodyBytes   int64    `validate:"gte=1024"`
	AllowedOrigins []string `validate:"dive,url"`
	EnableHSTS     bool
}

var validate = validator.New()

// LoadEnvFiles reads .env and .env.local. Variables already present in the
// environment are never overridden.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds a Config from the environment and validates it.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ADDR", ":5000")
	v.SetDefault("SECRET_KEY", "dev-secret-key")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED_DEMO", true)
	v.SetDefault("RATE_LIMIT_RPS", 20.0)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("MAX_BODY_BYTES", 64<<10)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("ENABLE_HSTS", false)

	cfg := &Config{
		Addr:           v.GetString("APP_ADDR"),
		SecretKey:      v.GetString("SECRET_KEY"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		SeedDemo:       v.GetBool("SEED_DEMO"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		MaxBodyBytes:   v.GetInt64("MAX_BODY_BYTES"),
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		EnableHSTS:     v.GetBool("ENABLE_HSTS"),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field in one error.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
