package config

import (
    "os"

    "github.com/joho/godotenv"
)

type Config struct {
    Port        string
    DatabaseURL string // empty selects the in-memory store
    JWTSecret   string
    AutoMigrate bool
}

func FromEnv() Config {
    c := Config{}
    c.Port = getenv("PORT", "8080")
    c.DatabaseURL = os.Getenv("DATABASE_URL")
    c.JWTSecret = os.Getenv("JWT_SECRET")
    c.AutoMigrate = getenv("AUTO_MIGRATE", "false") == "true"
    return c
}

// LoadDotEnv loads a .env file if present; real environment variables win.
func LoadDotEnv(path string) error {
    if _, err := os.Stat(path); err != nil {
        if os.IsNotExist(err) {
            return nil
        }
        return err
    }
    return godotenv.Load(path)
}

func getenv(k, def string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return def
}
