package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DefaultBatchSize       = 1000
	DefaultLookupChunkSize = 500
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	RevenueSync RevenueSync `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	Driver      string `mapstructure:"database_driver"`
	Password    string `mapstructure:"database_password"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
	AutoMigrate bool   `mapstructure:"database_auto_migrate"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// RevenueSync agrupa a configuração do pipeline de sincronização da planilha de receita
type RevenueSync struct {
	ExportURL             string `mapstructure:"revenue_sync_export_url"`
	RequestTimeoutSeconds int    `mapstructure:"revenue_sync_request_timeout_seconds"`
	BatchSize             int    `mapstructure:"revenue_sync_batch_size"`
	LookupChunkSize       int    `mapstructure:"revenue_sync_lookup_chunk_size"`
	CronSchedule          string `mapstructure:"revenue_sync_cron"`
	Enabled               bool   `mapstructure:"revenue_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/revenue?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", false)

	viper.SetDefault("REVENUE_SYNC_EXPORT_URL", "")
	viper.SetDefault("REVENUE_SYNC_REQUEST_TIMEOUT_SECONDS", 60)
	viper.SetDefault("REVENUE_SYNC_BATCH_SIZE", DefaultBatchSize)
	// limite de IDs por requisição ao banco
	viper.SetDefault("REVENUE_SYNC_LOOKUP_CHUNK_SIZE", DefaultLookupChunkSize)
	// Todos os dias às 6h da manhã
	viper.SetDefault("REVENUE_SYNC_CRON", "0 6 * * *")
	viper.SetDefault("REVENUE_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
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

	config.normalize()

	return config, nil
}

// normalize preenche os campos derivados e corrige valores inválidos
func (c *Config) normalize() {
	if c.RevenueSync.BatchSize <= 0 {
		logrus.Warnf("REVENUE_SYNC_BATCH_SIZE inválido (%d), usando %d", c.RevenueSync.BatchSize, DefaultBatchSize)
		c.RevenueSync.BatchSize = DefaultBatchSize
	}

	if c.RevenueSync.LookupChunkSize <= 0 {
		logrus.Warnf("REVENUE_SYNC_LOOKUP_CHUNK_SIZE inválido (%d), usando %d", c.RevenueSync.LookupChunkSize, DefaultLookupChunkSize)
		c.RevenueSync.LookupChunkSize = DefaultLookupChunkSize
	}

	if c.RevenueSync.RequestTimeoutSeconds <= 0 {
		c.RevenueSync.RequestTimeoutSeconds = 60
	}

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
