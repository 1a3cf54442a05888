package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort       string // Application port
	DBDriver      string // Database driver: "mysql" or "sqlite"
	DBUser        string // Database user (mysql)
	DBPassword    string // Database password (mysql)
	DBHost        string // Database host (mysql)
	DBPort        string // Database port (mysql)
	DBName        string // Database name (mysql)
	SQLitePath    string // Database file path (sqlite)
	JWTSecret     string // JWT secret key
	SessionSecret string // Cookie session secret key
	RedisAddr     string // Redis server address
	RedisPass     string // Redis password
	RedisDB       int    // Redis database number
	IsProd        bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "mysql" // Default driver
	}
	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "balance_game.db" // Default sqlite file
	}
	return &Config{
		AppPort:       os.Getenv("APP_PORT"),          // Application port
		DBDriver:      driver,                         // Database driver
		DBUser:        os.Getenv("DB_USER"),           // Database user
		DBPassword:    os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:        os.Getenv("DB_HOST"),           // Database host
		DBPort:        os.Getenv("DB_PORT"),           // Database port
		DBName:        os.Getenv("DB_NAME"),           // Database name
		SQLitePath:    sqlitePath,                     // SQLite file path
		JWTSecret:     os.Getenv("JWT_SECRET"),        // JWT secret key
		SessionSecret: os.Getenv("SESSION_SECRET"),    // Session secret key
		RedisAddr:     os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:     os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:       redisDB,                        // Redis database number
		IsProd:        os.Getenv("IS_PROD") == "true", // Is production environment
	}
}
