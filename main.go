package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/toqaosama/portfolio-backend/api"
	"github.com/toqaosama/portfolio-backend/config"
	"github.com/toqaosama/portfolio-backend/database"
	"github.com/toqaosama/portfolio-backend/models"
	"github.com/toqaosama/portfolio-backend/realtime"
	"github.com/toqaosama/portfolio-backend/services"
	"github.com/toqaosama/portfolio-backend/site"
	"github.com/toqaosama/portfolio-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	ctx := context.Background()
	env := config.New()

	if prefix := config.GetString(env, "SSM_PARAMETER_PATH", ""); prefix != "" {
		store, err := config.NewParameterStore(ctx, config.GetString(env, "AWS_REGION", ""))
		if err != nil {
			fmt.Printf("Error creating parameter store client: %v\n", err)
			os.Exit(1)
		}
		if _, err := config.LoadSSM(ctx, store, prefix, env); err != nil {
			fmt.Printf("Error loading parameters: %v\n", err)
			os.Exit(1)
		}
	}

	settings := config.Load(env)
	setupLogging(settings)

	if err := settings.Auth.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Auth settings are incomplete")
	}

	db, gormDB := openDatabase(settings)
	if gormDB != nil {
		if done := runTasks(ctx, settings, gormDB, db); done {
			return
		}
	}

	broker := realtime.NewBroker()
	db.ContactMessageRepo().UsePublisher(broker)

	bucket, err := storage.New(ctx, settings.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Error configuring image storage")
	}
	if minio, ok := bucket.(*storage.MinIOBucket); ok {
		if err := minio.EnsureBucket(ctx); err != nil {
			log.Fatal().Err(err).Msg("Error preparing image bucket")
		}
	}

	contact := services.NewContactService(
		db.ContactMessageRepo(),
		settings.Store.Validate,
		services.NotifiersFromSettings(settings.Email, settings.SMS)...,
	)

	renderer, err := site.New(site.NewSource(settings.Site.Content, db), settings.Site.PageSize)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading page templates")
	}

	server, err := api.NewServer(api.Dependencies{
		Database: db,
		Site:     renderer,
		Contact:  contact,
		Auth:     services.NewAuthService(db.AdminUserRepo(), settings.Auth),
		Uploader: storage.NewUploader(bucket),
		Broker:   broker,
	}, settings)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	errChannel := make(chan error, 2)
	group, groupCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		server.Start(errChannel)
		return nil
	})
	if db.Configured() {
		contacts := db.ContactMessageRepo()
		listener := realtime.NewPGListener(settings.Store.DSN(), models.ContactNotifyChannel, broker,
			func(ctx context.Context, id uuid.UUID) (any, error) {
				return contacts.Get(ctx, id)
			})
		group.Go(func() error {
			return listener.Run(groupCtx)
		})
	}

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	if fatalErr := <-errChannel; fatalErr != nil && !errors.Is(fatalErr, http.ErrServerClosed) {
		log.Info().Msgf("Closing server: %v", fatalErr)
	}

	stop()
	server.ShutdownGracefully(settings.Server.ShutdownTimeout)
	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("Background task failed")
	}
}

func setupLogging(settings config.Settings) {
	zerolog.TimeFieldFormat = time.RFC3339
	if settings.Development() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// openDatabase connects to the store. When the store settings are missing
// the service still starts: it serves the static content and every store
// operation reports the configuration error.
func openDatabase(settings config.Settings) (database.Database, *gorm.DB) {
	if err := settings.Store.Validate(); err != nil {
		log.Warn().Err(err).Msg("Store is not configured, serving static content only")
		return database.Unconfigured(err), nil
	}

	newLogger := logger.New(
		&log.Logger,
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  settings.Development(),
		},
	)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  settings.Store.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	if settings.Store.ReplicaURL != "" {
		if err := database.UseReplicas(gormDB, settings.Store.ReplicaURL); err != nil {
			log.Fatal().Err(err).Msg("Error registering read replica")
		}
	}

	// Test database connection
	var result int
	if err := gormDB.Raw("SELECT 1").Scan(&result).Error; err != nil {
		log.Fatal().Err(err).Msg("Error testing database connection")
	}

	return database.New(gormDB), gormDB
}

// runTasks runs the one-shot maintenance tasks. It reports true when the
// process should exit instead of serving.
func runTasks(ctx context.Context, settings config.Settings, gormDB *gorm.DB, db database.Database) bool {
	tasks := settings.Tasks

	if tasks.Migrate {
		if err := models.Migrate(gormDB); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
	}

	if tasks.SchemaReport {
		drift, err := models.SchemaDriftReport(gormDB)
		if err != nil {
			log.Fatal().Err(err).Msg("Schema report failed")
		}
		drifted := 0
		for _, d := range drift {
			if !d.Clean() {
				drifted++
			}
		}
		log.Info().Int("tables", len(drift)).Int("drifted", drifted).Msg("Schema report complete")
		return true
	}

	if tasks.GenerateQueries != "" {
		models.GenerateQueries(gormDB, tasks.GenerateQueries)
		return true
	}

	if tasks.SeedContent {
		if err := site.Seed(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("Seeding content failed")
		}
	}
	return false
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
