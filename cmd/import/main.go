// Command import loads a statement CSV into the ledger without going
// through the HTTP surface.
package main

import (
	"flag"
	"fmt"
	"os"

	"numbers/internal/config"
	"numbers/internal/database"
	"numbers/internal/events"
	"numbers/internal/logger"
	"numbers/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Import error: %v", err)
	}
}

func run() error {
	var (
		file = flag.String("file", "", "path to the statement CSV")
		kind = flag.String("kind", "transactions", "statement kind: transactions or bills")
	)
	flag.Parse()

	if *file == "" {
		return fmt.Errorf("usage: import -file statement.csv [-kind transactions|bills]")
	}

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	var publisher events.Publisher = events.Noop{}
	if appConfig.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(appConfig.AMQPURL, appConfig.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to connect event publisher: %w", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	db := dbManager.DB()
	ledgerService := services.NewLedgerService(db, publisher)
	billService := services.NewBillService(db, publisher)
	importService := services.NewImportService(ledgerService, billService, publisher)

	var result *services.ImportResult
	switch *kind {
	case "transactions":
		result, err = importService.ImportTransactionFile(*file)
	case "bills":
		result, err = importService.ImportBillFile(*file)
	default:
		return fmt.Errorf("unknown kind %q (use transactions or bills)", *kind)
	}
	if err != nil {
		return err
	}

	logger.Get().Infow("import finished",
		"file", *file,
		"kind", *kind,
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	if !result.ImportedAny() {
		logger.Get().Warn("no usable rows found in statement")
	}
	return nil
}
