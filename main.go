package main

import (
	"context"
	"log"
	"time"

	"bearpath/adapters/excel"
	"bearpath/adapters/postgres"
	"bearpath/app"
	"bearpath/internal/config"
	"bearpath/internal/errors"
	"bearpath/internal/migration"
	"bearpath/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

// seedRoster imports a Miracle export into an empty roster on first boot.
func seedRoster(ctx context.Context, desk *app.DeskService, filePath string) error {
	roster, _, err := desk.Roster(ctx)
	if err != nil {
		return err
	}
	if roster.Len() > 0 {
		log.Printf("Roster already has %d rows, skipping seed file", roster.Len())
		return nil
	}

	raw, err := excel.NewDataReader(filePath).ReadTable()
	if err != nil {
		return errors.Wrapf(err, "failed to read seed file %s", filePath)
	}

	report, err := desk.SyncUpload(ctx, raw, time.Now().UTC())
	if err != nil {
		return errors.Wrapf(err, "failed to import seed file %s", filePath)
	}
	log.Printf("Seeded roster from %s: %d rows (%d skipped)", filePath, report.RowCount, len(report.Skipped))
	return nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	deskService := app.NewDeskService(postgres.NewRosterRepository(db))
	phoneLogService := app.NewPhoneLogService(postgres.NewPhoneLogRepository(db))

	if appConfig.Data.SeedFile != "" {
		if err := seedRoster(context.Background(), deskService, appConfig.Data.SeedFile); err != nil {
			log.Fatalf("Failed to seed roster: %v", err)
		}
	}

	webApp := ui.NewApp(ui.Config{Port: appConfig.Server.Port}, deskService, phoneLogService)

	log.Printf("Starting server on port %s", appConfig.Server.Port)
	log.Fatal(webApp.Start())
}
