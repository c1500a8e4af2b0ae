package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Drivers de persistência suportados.
const (
	DriverPostgres = "postgres"
	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
)

// Modos de execução do servidor.
const (
	RunModeHTTP   = "http"
	RunModeLambda = "lambda"
)

// Config armazena todas as configurações do Easy Inventory.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string
	RunMode     string

	// Persistência
	StorageDriver string
	DatabaseURL   string
	DBTimeout     time.Duration
	AutoMigrate   bool

	// DynamoDB
	AWSRegion         string
	AWSEndpoint       string
	DynamoSpacesTable string
	DynamoItemsTable  string

	// Cache (Redis). Vazio desativa cache e rate limiting.
	RedisAddr string
	CacheTTL  time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// HTTP
	CORSAllowedOrigin string
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	return &Config{
		// 1. Geral
		Port:        getEnv("PORT", "5000"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		RunMode:     strings.ToLower(getEnv("RUN_MODE", RunModeHTTP)),

		// 2. Persistência
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverPostgres)),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DBTimeout:     getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,
		AutoMigrate:   getBoolEnv("AUTO_MIGRATE", true),

		// 3. DynamoDB
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		AWSEndpoint:       getEnv("AWS_ENDPOINT_OVERRIDE", ""),
		DynamoSpacesTable: getEnv("DYNAMO_SPACES_TABLE", "spaces"),
		DynamoItemsTable:  getEnv("DYNAMO_ITEMS_TABLE", "items"),

		// 4. Cache (Redis)
		RedisAddr: getEnv("REDIS_ADDR", ""),
		CacheTTL:  getDurationEnv("CACHE_TTL_SEC", 300) * time.Second,

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
	}
}

// Validate verifica combinações obrigatórias antes de abrir qualquer recurso.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("a variável de ambiente DATABASE_URL deve ser definida para o driver %q", c.StorageDriver)
		}
	case DriverDynamoDB:
		if c.DynamoSpacesTable == "" || c.DynamoItemsTable == "" {
			return fmt.Errorf("as tabelas DynamoDB devem ser definidas para o driver %q", c.StorageDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("driver de persistência desconhecido: %q", c.StorageDriver)
	}

	if c.RunMode != RunModeHTTP && c.RunMode != RunModeLambda {
		return fmt.Errorf("modo de execução desconhecido: %q", c.RunMode)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT inválida (%q): %w", c.Port, err)
	}
	return nil
}

// CacheEnabled indica se um endereço Redis foi configurado.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getBoolEnv lê uma variável booleana ("true", "1", "false", "0"...).
func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é booleano. Usando padrão (%t).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
