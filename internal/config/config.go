package config

import (
	"log"
	"os"
	"time"
)

const (
	BackendSQLite = "sqlite"
	BackendPebble = "pebble"
)

type Config struct {
	Port         string
	StoreBackend string
	DBDSN        string
	PebbleDir    string
	LogFile      string
	NotifyTTL    time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	backend := os.Getenv("STORE_BACKEND")
	if backend != BackendPebble {
		backend = BackendSQLite
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "agripoultry.db"
	} // sqlite file in project root
	pebbleDir := os.Getenv("PEBBLE_DIR")
	if pebbleDir == "" {
		pebbleDir = "agripoultry.pebble"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./agripoultry.log"
	}
	ttl := 3 * time.Second
	if v := os.Getenv("NOTIFY_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		} else {
			log.Printf("[config] ignoring NOTIFY_TTL=%q", v)
		}
	}

	cfg := Config{Port: port, StoreBackend: backend, DBDSN: dsn, PebbleDir: pebbleDir, LogFile: logFile, NotifyTTL: ttl}
	log.Printf("[config] PORT=%s STORE_BACKEND=%s DB_DSN=%s PEBBLE_DIR=%s LOG_FILE=%s NOTIFY_TTL=%s",
		cfg.Port, cfg.StoreBackend, cfg.DBDSN, cfg.PebbleDir, cfg.LogFile, cfg.NotifyTTL)
	return cfg
}
