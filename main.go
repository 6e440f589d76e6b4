package main

import (
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkwell-cms/backend/api"
	"github.com/inkwell-cms/backend/config"
	"github.com/inkwell-cms/backend/database"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Msgf("Error loading .env file: %v", err)
	}

	c := config.New()

	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "DB_HOST", "localhost"),
		config.GetString(c, "DB_USER", "postgres"),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_NAME", "blog"),
		config.GetString(c, "DB_PORT", "5432"),
		config.GetString(c, "DB_SSLMODE", "disable"),
	)

	gormLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatal().Msgf("Error connecting to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Msgf("Error migrating schema: %v", err)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(database.New(db))
	if err != nil {
		log.Fatal().Msgf("Error initializing server: %v", err)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
