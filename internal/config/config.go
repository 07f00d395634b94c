package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	Gemini GeminiConfig
	Report ReportConfig
	Sheets SheetsConfig
	Auth   AuthConfig
	Logger LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GeminiConfig holds the generation model identifiers and pipeline tunables.
// The pipeline treats all of these as opaque constants.
type GeminiConfig struct {
	APIKey     string
	TextModel  string
	ImageModel string
	TTSModel   string
	Voice      string
	AspectRatio string

	VocabSampleSize int

	// Audio enrichment tunables. MinBytes/BytesPerChar feed the
	// undersized-payload heuristic; RequestDelay is the mandatory pause
	// between sequential synthesis calls.
	AudioMinBytes     int
	AudioBytesPerChar int
	AudioRequestDelay time.Duration
}

// ReportConfig configures the optional LLM that writes teacher-facing
// submission analyses. Disabled when ServerURL is empty.
type ReportConfig struct {
	ServerURL string
	Model     string
}

type SheetsConfig struct {
	EndpointURL string
	Timeout     time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

type LoggerConfig struct {
	Level string
	Env   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine when env vars carry the config.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.sslmode"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Gemini: GeminiConfig{
			APIKey:            viper.GetString("gemini.api_key"),
			TextModel:         viper.GetString("gemini.text_model"),
			ImageModel:        viper.GetString("gemini.image_model"),
			TTSModel:          viper.GetString("gemini.tts_model"),
			Voice:             viper.GetString("gemini.voice"),
			AspectRatio:       viper.GetString("gemini.aspect_ratio"),
			VocabSampleSize:   viper.GetInt("gemini.vocab_sample_size"),
			AudioMinBytes:     viper.GetInt("gemini.audio.min_bytes"),
			AudioBytesPerChar: viper.GetInt("gemini.audio.bytes_per_char"),
			AudioRequestDelay: viper.GetDuration("gemini.audio.request_delay"),
		},
		Report: ReportConfig{
			ServerURL: viper.GetString("report.server_url"),
			Model:     viper.GetString("report.model"),
		},
		Sheets: SheetsConfig{
			EndpointURL: viper.GetString("sheets.endpoint_url"),
			Timeout:     viper.GetDuration("sheets.timeout"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("auth.jwt_secret"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Environment overrides for the secrets that rarely live in files.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		config.Redis.Address = addr
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if url := os.Getenv("SHEETS_ENDPOINT_URL"); url != "" {
		config.Sheets.EndpointURL = url
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 120)
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("gemini.text_model", "gemini-2.5-flash")
	viper.SetDefault("gemini.image_model", "imagen-3.0-generate-002")
	viper.SetDefault("gemini.tts_model", "gemini-2.5-flash-preview-tts")
	viper.SetDefault("gemini.voice", "Kore")
	viper.SetDefault("gemini.aspect_ratio", "1:1")
	viper.SetDefault("gemini.vocab_sample_size", 15)
	viper.SetDefault("gemini.audio.min_bytes", 15000)
	viper.SetDefault("gemini.audio.bytes_per_char", 100)
	viper.SetDefault("gemini.audio.request_delay", 2*time.Second)
	viper.SetDefault("sheets.timeout", 10*time.Second)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
}

// GetDSN builds the Postgres connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
