package main

import (
	"context"
	"fmt"
	"log"
	"time"

	mongoMigration "voyago/internal/migrations/mongo"
	"voyago/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	cfg.Log.Info("Starting Mongo migration job")
	defer cfg.Client.GracefulShutdown()

	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := mongoMigration.RunSeed(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	fmt.Println("Migration completed successfully.")
}
