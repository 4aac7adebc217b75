package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	appconfig "selstudy/config"
	"selstudy/internal/repository"
	"selstudy/internal/seed"
)

func main() {
	cfg := appconfig.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	questionRepo := repository.NewQuestionRepo(db)
	scenarioRepo := repository.NewScenarioRepo(db)

	if err := seed.Run(ctx, questionRepo, scenarioRepo); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	log.Printf("Seeded %d CASEL questions, %d UEQ items, %d scenario variants",
		len(seed.CASELQuestions()), len(seed.UEQItems()), len(seed.Scenarios()))
}
