package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP           string  // Host IP for the server
	RESTPort         int     // Port for the REST API
	GinMode          string  // Mode for the Gin framework (e.g., release, debug, test)
	MazeStore        string  // Maze store backend: memory, redis or mongo
	RedisAddr        string  // Address of the Redis server
	RedisPassword    string  // Password for the Redis server
	RedisDB          int     // Redis database index
	MazeTTLSeconds   int     // Lifetime of stored mazes in Redis, 0 keeps them forever
	DBHost           string  // Hostname or IP address for the database
	DBPort           int     // Port number for the database
	DBUser           string  // Username for the database
	DBPassword       string  // Password for the database
	DBName           string  // Name of the database
	CellSize         float64 // Scene units per maze cell
	WallThickness    float64 // Depth of wall solids in scene units
	MinimapSize      float64 // Default minimap viewport side
	DefaultAlgorithm string  // Maze generation algorithm used when a request names none
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:           getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:         getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:          getEnvWithDefault("GIN_MODE", "release"),
		MazeStore:        getEnvWithDefault("MAZE_STORE", "memory"),
		RedisAddr:        getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsIntWithDefault("REDIS_DB", 0),
		MazeTTLSeconds:   getEnvAsIntWithDefault("MAZE_TTL_SECONDS", 0),
		DBHost:           getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:           getEnvAsIntWithDefault("DB_PORT", 27017),
		DBUser:           getEnvWithDefault("DB_USER", ""),
		DBPassword:       getEnvWithDefault("DB_PASS", ""),
		DBName:           getEnvWithDefault("DB_NAME", "vinom_walker"),
		CellSize:         getEnvAsFloatWithDefault("CELL_SIZE", 1.0),
		WallThickness:    getEnvAsFloatWithDefault("WALL_THICKNESS", 0.1),
		MinimapSize:      getEnvAsFloatWithDefault("MINIMAP_SIZE", 200),
		DefaultAlgorithm: getEnvWithDefault("DEFAULT_ALGORITHM", "backtracker"),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an integer environment variable, logging a fatal error if it cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsFloatWithDefault retrieves a float environment variable, logging a fatal error if it cannot be parsed.
func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return value
}
