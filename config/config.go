package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"dashmart/models"

	"github.com/joho/godotenv"
)

// Config is everything main needs to wire the server.
type Config struct {
	Port      string
	PublicURL string

	RedisURL      string
	RedisPassword string

	GeminiAPIKey   string
	GeminiModel    string
	GeminiEndpoint string
	SuggestTimeout time.Duration
	SuggestTTL     time.Duration
	SuggestPerMin  int
	SuggestBurst   int

	TrackTick   time.Duration
	EventBuffer int
	CartIdleTTL time.Duration

	Store models.DarkStore
}

// Load reads .env if present and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	return Config{
		Port:           port,
		PublicURL:      envString("PUBLIC_URL", "http://localhost"+port),
		RedisURL:       os.Getenv("REDIS_URL"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envString("GEMINI_MODEL", "gemini-3-flash-preview"),
		GeminiEndpoint: envString("GEMINI_ENDPOINT", "https://generativelanguage.googleapis.com/"),
		SuggestTimeout: envDuration("SUGGEST_TIMEOUT", 15*time.Second),
		SuggestTTL:     envDuration("SUGGEST_CACHE_TTL", 10*time.Minute),
		SuggestPerMin:  envInt("SUGGEST_RATE_PER_MIN", 10),
		SuggestBurst:   envInt("SUGGEST_BURST", 3),
		TrackTick:      envDuration("TRACK_TICK", time.Second),
		EventBuffer:    envInt("EVENT_BUFFER", 256),
		CartIdleTTL:    envDuration("CART_IDLE_TTL", 2*time.Hour),
		Store: models.DarkStore{
			ID:              envString("STORE_ID", "DS-421"),
			Name:            envString("STORE_NAME", "South-East Hub"),
			Address:         envString("STORE_ADDRESS", "42nd Avenue, Block B"),
			ActiveRiders:    envInt("STORE_ACTIVE_RIDERS", 14),
			IdleRiders:      envInt("STORE_IDLE_RIDERS", 6),
			OrdersInQueue:   0,
			InventoryHealth: envInt("STORE_INVENTORY_HEALTH", 92),
		},
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, v, def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: %s=%q is not a positive duration, using %s", key, v, def)
		return def
	}
	return d
}
