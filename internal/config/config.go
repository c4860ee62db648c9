package config

import (
	"os"
	"strconv"
)

// Config holds all runtime settings for the placement API.
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	HTTPPort  string
	JWTSecret string

	AdminUsername string
	AdminPassword string

	Engine EngineConfig
}

// EngineConfig tunes the adaptive testing engine.
type EngineConfig struct {
	MinLevel int
	MaxLevel int

	UpThreshold       int
	SkipThreshold     int
	DownThreshold     int
	SkipDownThreshold int
	StepDelta         int
	SkipDelta         int

	MaxQuestionsPerSection int
	PassageSetSize         int
	TimeLimitSeconds       int
}

// DefaultEngineConfig returns the standard engine tuning.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MinLevel:               1,
		MaxLevel:               7,
		UpThreshold:            3,
		SkipThreshold:          5,
		DownThreshold:          3,
		SkipDownThreshold:      5,
		StepDelta:              1,
		SkipDelta:              3,
		MaxQuestionsPerSection: 20,
		PassageSetSize:         4,
		TimeLimitSeconds:       3000,
	}
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "placementdb"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:      getEnv("PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "password123"),
		Engine: EngineConfig{
			MinLevel:               getEnvInt("ENGINE_MIN_LEVEL", 1),
			MaxLevel:               getEnvInt("ENGINE_MAX_LEVEL", 7),
			UpThreshold:            getEnvInt("ENGINE_UP_THRESHOLD", 3),
			SkipThreshold:          getEnvInt("ENGINE_SKIP_THRESHOLD", 5),
			DownThreshold:          getEnvInt("ENGINE_DOWN_THRESHOLD", 3),
			SkipDownThreshold:      getEnvInt("ENGINE_SKIP_DOWN_THRESHOLD", 5),
			StepDelta:              getEnvInt("ENGINE_STEP_DELTA", 1),
			SkipDelta:              getEnvInt("ENGINE_SKIP_DELTA", 3),
			MaxQuestionsPerSection: getEnvInt("ENGINE_SECTION_QUESTION_CAP", 20),
			PassageSetSize:         getEnvInt("ENGINE_PASSAGE_SET_SIZE", 4),
			TimeLimitSeconds:       getEnvInt("ENGINE_TIME_LIMIT_SECONDS", 3000),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
