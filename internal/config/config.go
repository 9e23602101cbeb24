package config

import "os"

type Config struct {
	MongoURI  string
	DBName    string
	RedisAddr string
	HTTPPort  string
}

// Load reads server configuration from the environment. MongoURI and
// RedisAddr have no defaults on purpose: an empty MongoURI selects the
// in-memory store, an empty RedisAddr disables the analysis cache.
func Load() *Config {
	return &Config{
		MongoURI:  os.Getenv("MONGO_URI"),
		DBName:    getEnv("DB_NAME", "nlpd_forms"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		HTTPPort:  getEnv("PORT", "8080"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
