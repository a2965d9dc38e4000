package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Tipos de fonte de dados aceitos em DATA_SOURCE
const (
	DataSourceFixture  = "fixture"
	DataSourceUpstream = "upstream"
	DataSourceDatabase = "database"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	DataSource DataSource `mapstructure:",squash"`
	Upstream   Upstream   `mapstructure:",squash"`
	Fixture    Fixture    `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Pulse      Pulse      `mapstructure:",squash"`
	Cors       Cors       `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DataSource escolhe, uma única vez na inicialização, de onde vêm os registros
type DataSource struct {
	Kind string `mapstructure:"data_source"`
}

// Upstream aponta para a API de demonstração original
type Upstream struct {
	BaseURL string        `mapstructure:"upstream_base_url"`
	Timeout time.Duration `mapstructure:"upstream_timeout"`
}

type Fixture struct {
	Seed           uint64 `mapstructure:"fixture_seed"`
	CallLogSize    int    `mapstructure:"fixture_call_log_size"`
	SimulatedCalls int    `mapstructure:"fixture_simulated_calls"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Pulse configura o monitor de latência
type Pulse struct {
	Enabled             bool          `mapstructure:"pulse_enabled"`
	Interval            time.Duration `mapstructure:"pulse_interval"`
	Window              int           `mapstructure:"pulse_window"`
	UnstableThresholdMs int           `mapstructure:"pulse_unstable_threshold_ms"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("SHUTDOWN_TIMEOUT", "15s")

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("DATA_SOURCE", DataSourceFixture)

	viper.SetDefault("UPSTREAM_BASE_URL", "http://localhost:8001")
	viper.SetDefault("UPSTREAM_TIMEOUT", "5s") // Uma única tentativa por requisição

	viper.SetDefault("FIXTURE_SEED", 42)
	viper.SetDefault("FIXTURE_CALL_LOG_SIZE", 50)
	viper.SetDefault("FIXTURE_SIMULATED_CALLS", 20)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/revenue?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("PULSE_ENABLED", true)
	viper.SetDefault("PULSE_INTERVAL", "1s")
	viper.SetDefault("PULSE_WINDOW", 20)
	viper.SetDefault("PULSE_UNSTABLE_THRESHOLD_MS", 500)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate rejeita combinações que impediriam o serviço de subir
func (c *Config) Validate() error {
	switch c.DataSource.Kind {
	case DataSourceFixture, DataSourceUpstream, DataSourceDatabase:
	default:
		return fmt.Errorf("config: DATA_SOURCE inválido: %q", c.DataSource.Kind)
	}

	if c.DataSource.Kind == DataSourceUpstream && c.Upstream.BaseURL == "" {
		return fmt.Errorf("config: UPSTREAM_BASE_URL é obrigatório com DATA_SOURCE=%s", DataSourceUpstream)
	}

	if c.Pulse.Window <= 0 {
		return fmt.Errorf("config: PULSE_WINDOW deve ser positivo: %d", c.Pulse.Window)
	}

	if c.Pulse.Interval <= 0 {
		return fmt.Errorf("config: PULSE_INTERVAL deve ser positivo: %s", c.Pulse.Interval)
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
