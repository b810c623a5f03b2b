package main

import (
    "flag"
    "fmt"
    "log"
    "net/http"
    "os"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"
    zerologlog "github.com/rs/zerolog/log"

    "doctordash/internal/api"
    "doctordash/internal/auth"
    "doctordash/internal/bus"
    "doctordash/internal/config"
    "doctordash/internal/game"
    "doctordash/internal/store/memory"
    "doctordash/internal/store/postgres"
    "doctordash/internal/ws"
)

const version = "v1.0.0"

func main() {
    var (
        showHelp    = flag.Bool("help", false, "Show help message")
        showVersion = flag.Bool("version", false, "Show version information")
        portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
    )
    flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
    flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
    flag.Parse()

    if *showHelp {
        fmt.Printf(`doctordash - Real-time bluffing party game server

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT            Port to listen on (default: 8080)
  DATABASE_URL    Postgres DSN; leave empty for the in-memory store
  JWT_SECRET      HS256 secret for verifying bearer tokens (required)
  AUTO_MIGRATE    Run schema auto-migration on startup (default: false)

A .env file in the working directory is loaded if present.
`, os.Args[0])
        return
    }

    if *showVersion {
        fmt.Printf("doctordash %s\n", version)
        return
    }

    if err := config.LoadDotEnv(".env"); err != nil {
        log.Printf("failed to load .env: %v", err)
    }
    cfg := config.FromEnv()
    if *portFlag != "" {
        cfg.Port = *portFlag
    }
    if cfg.JWTSecret == "" {
        log.Fatal("JWT_SECRET is not set")
    }

    // zerolog setup (human-friendly console)
    zerolog.TimeFieldFormat = time.RFC3339
    cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
    zerologlog.Logger = zerologlog.Output(cw)

    // Gin setup with custom logger (skip /socket.io noise)
    gin.SetMode(gin.ReleaseMode)
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(func(c *gin.Context) {
        start := time.Now()
        c.Next()
        path := c.Request.URL.Path
        if strings.HasPrefix(path, "/socket.io") {
            return
        }
        status := c.Writer.Status()
        dur := time.Since(start)
        zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
    })

    // Healthcheck
    r.GET("/health", func(c *gin.Context) {
        c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
    })

    // Store selection
    var store game.Store
    if cfg.DatabaseURL != "" {
        pg, err := postgres.Open(cfg.DatabaseURL)
        if err != nil {
            log.Fatalf("database connection failed: %v", err)
        }
        if cfg.AutoMigrate {
            if err := pg.AutoMigrate(); err != nil {
                log.Fatalf("auto-migration failed: %v", err)
            }
        }
        store = pg
        zerologlog.Info().Msg("using postgres store")
    } else {
        store = memory.New()
        zerologlog.Warn().Msg("DATABASE_URL empty, using in-memory store")
    }

    // Core service + realtime fan-out
    b := bus.New()
    svc := game.NewService(store, nil, b)
    sock := ws.New(svc, b)
    io := sock.Mount(r)
    defer io.Close()

    api.New(svc).Register(r, auth.Middleware(cfg.JWTSecret))

    log.Printf("listening on :%s", cfg.Port)
    if err := r.Run(":" + cfg.Port); err != nil {
        log.Fatal(err)
    }
}
