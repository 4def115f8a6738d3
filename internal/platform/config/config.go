package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PythonBin          string
	ExecTimeoutSeconds int

	FreeHintsPerDay    int
	HintLockTTLSeconds int
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	OpenAIModel        string
	HintMaxTokens      int
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort: getEnv("API_PORT", "8080"),
		JWTKey:  []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:  time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "codedojo_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		PythonBin:          getEnv("PYTHON_BIN", "python3"),
		ExecTimeoutSeconds: getEnvAsInt("EXEC_TIMEOUT_SECONDS", 5),

		FreeHintsPerDay:    getEnvAsInt("FREE_HINTS_PER_DAY", 3),
		HintLockTTLSeconds: getEnvAsInt("HINT_LOCK_TTL_SECONDS", 60),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		HintMaxTokens:      getEnvAsInt("HINT_MAX_TOKENS", 300),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
