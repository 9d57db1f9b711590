package main

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/harentsoaR/diabetes-api/internal/config"
	"github.com/harentsoaR/diabetes-api/internal/database"
	"github.com/harentsoaR/diabetes-api/internal/handlers"
	"github.com/harentsoaR/diabetes-api/internal/middleware"
	"github.com/harentsoaR/diabetes-api/internal/predictor"
	"github.com/harentsoaR/diabetes-api/internal/repository"
	"github.com/harentsoaR/diabetes-api/internal/services"
	"github.com/harentsoaR/diabetes-api/internal/utils"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "diabetes-api",
		Short: "Diabetes risk screening for doctors",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// a missing .env is fine, the environment may already be set
			_ = godotenv.Load()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(predictCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger(env, level string) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return logger.Level(lvl)
}

func runServer() error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		logger := newLogger(os.Getenv("ENV"), "info")
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	logger := newLogger(cfg.Env, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			logger.Fatal().Err(err).Msg("failed to generate session secret")
		}
		logger.Warn().Msg("SESSION_SECRET not set, using an ephemeral secret; sessions end on restart")
	}
	signer, err := utils.NewSessionSigner(secret, utils.SessionTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session signer")
	}

	// Model
	model, err := predictor.Load(cfg.ModelPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.ModelPath).Msg("failed to load model")
	}
	logger.Info().Str("path", cfg.ModelPath).Str("kind", model.Kind()).Msg("model loaded")

	// Database
	ctx := context.Background()
	db, err := database.Open(ctx, database.Options{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	if pg, ok := db.(*database.Postgres); ok {
		stat := pg.Stat()
		logger.Info().
			Int32("max_conns", stat.MaxConns()).
			Int32("total_conns", stat.TotalConns()).
			Msg("connected to database")
	} else {
		logger.Info().Msg("connected to database")
	}

	// Services
	auth := services.NewAuthService(repository.NewDoctorRepo(db))
	patients := services.NewPatientService(repository.NewPatientRepo(db), model)
	session := middleware.NewSession(signer, cfg.CookieSecure)

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	h := handlers.NewHandler(auth, patients, session, logger)
	router, err := handlers.NewRouter(h, cfg.CORSOrigins)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
