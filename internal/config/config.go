package config

import (
	"os"
	"strconv"
)

type Config struct {
	Log   LogConfig
	Cache CacheConfig
	Sort  SortConfig
}

type LogConfig struct {
	Level string // zerolog level name, defaults to "info"
}

type CacheConfig struct {
	Path string // alignment record cache database; empty disables caching
}

type SortConfig struct {
	Workers int // parallelism for the pairwise passes; 0 = number of CPUs
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envString reads an environment variable with a default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Log: LogConfig{
			Level: envString("FACE_SORTER_LOG_LEVEL", "info"),
		},
		Cache: CacheConfig{
			Path: os.Getenv("FACE_SORTER_CACHE_PATH"),
		},
		Sort: SortConfig{
			Workers: envInt("FACE_SORTER_WORKERS", 0),
		},
	}
}
