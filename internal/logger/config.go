package logger

import (
	"io"
	"os"
	"strconv"
)

// EnvConfig holds logger configuration loaded from environment variables.
type EnvConfig struct {
	Level       string    // debug, info, warn, error
	Format      string    // json, text
	Output      io.Writer // overrides every other destination when set
	ServiceName string

	// LogFile enables a rotating file next to stdout when non-empty.
	LogFile     string
	LogFileOnly bool

	// Rotation, see lumberjack.Logger.
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// LoadFromEnv reads LOG_* variables. A generator run is short-lived, so file
// output is off unless LOG_FILE is set.
func LoadFromEnv() *EnvConfig {
	return &EnvConfig{
		Level:       getEnv("LOG_LEVEL", "info"),
		Format:      getEnv("LOG_FORMAT", "text"),
		ServiceName: getEnv("SERVICE_NAME", "moviedir"),

		LogFile:     os.Getenv("LOG_FILE"),
		LogFileOnly: getEnvBool("LOG_FILE_ONLY", false),

		MaxSize:    getEnvInt("LOG_MAX_SIZE", 50),
		MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		MaxAge:     getEnvInt("LOG_MAX_AGE", 30),
		Compress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	i, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return i
}
