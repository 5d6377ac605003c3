package main

import (
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/blog-platform-backend/api"
	"github.com/rpupo63/blog-platform-backend/config"
	"github.com/rpupo63/blog-platform-backend/database"
)

func main() {
	fmt.Println("Initializing app...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	settings := config.Load(config.New())
	if settings.SecretKey == "" {
		log.Fatal().Msg("SECRET_KEY is required")
	}
	if settings.Database == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	gormLogLevel := logger.Warn
	if settings.Debug {
		gormLogLevel = logger.Info
	}
	gormLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  gormLogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  settings.Database,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		log.Fatal().Err(err).Msg("Error testing database connection")
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error running migrations")
	}

	currentDB := database.New(db)

	errChannel := make(chan error)
	defer close(errChannel)

	server := api.NewServer(settings, currentDB)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
