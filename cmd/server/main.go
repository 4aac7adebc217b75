package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	appconfig "selstudy/config"
	"selstudy/internal/cache"
	"selstudy/internal/config"
	"selstudy/internal/repository"
	"selstudy/internal/service"
	"selstudy/internal/transport/rest"
	"selstudy/internal/transport/ws"
)

// @title SEL Study API
// @version 1.0
// @description Backend for the social-emotional learning research study
// @host localhost:8080
// @BasePath /api
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := appconfig.Load()

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Analysis: %s", aiConfig.Models.Analysis)
	log.Printf("  Chat:     %s", aiConfig.Models.Chat)
	log.Printf("  Summary:  %s", aiConfig.Models.Summary)
	log.Printf("  Scoring:  %s", aiConfig.Models.Scoring)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:  configured ✓")
	} else {
		log.Println("  API Key:  NOT SET (using mock responses)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	// Redis connection
	redisAddr := cfg.RedisAddr
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	participantRepo := repository.NewParticipantRepo(db)
	trialRepo := repository.NewTrialRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)
	ueqRepo := repository.NewUEQRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	scenarioRepo := repository.NewScenarioRepo(db)
	translationRepo := repository.NewTranslationRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	classRepo := repository.NewClassRepo(db)

	// Initialize caches
	chatCache := cache.NewChatSessionCache(rdb)
	bankCache := cache.NewBankCache(rdb)

	// External clients
	aiClient := service.NewClaudeClient()
	translator := service.NewDeepLClient()

	// Initialize services
	authSvc := service.NewAuthService()
	participantSvc := service.NewParticipantService(participantRepo)
	assignmentSvc := service.NewAssignmentService(trialRepo, scenarioRepo)
	questionSvc := service.NewQuestionService(questionRepo, bankCache)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, questionSvc)
	ueqSvc := service.NewUEQService(ueqRepo, questionSvc)
	trialSvc := service.NewTrialService(trialRepo, scenarioRepo, chatCache, aiClient)
	translationSvc := service.NewTranslationService(translationRepo, translator)
	notificationSvc := service.NewNotificationService(notificationRepo)
	classSvc := service.NewClassService(classRepo, scenarioRepo, aiClient, notificationSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	notificationSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:         authSvc,
		ParticipantService:  participantSvc,
		AssignmentService:   assignmentSvc,
		TrialService:        trialSvc,
		AssessmentService:   assessmentSvc,
		UEQService:          ueqSvc,
		QuestionService:     questionSvc,
		TranslationService:  translationSvc,
		NotificationService: notificationSvc,
		ClassService:        classSvc,
		WSHub:               wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /api/anonymous/register")
		log.Println("  POST /api/assignments")
		log.Println("  POST /api/trials/{anonId}/answer")
		log.Println("  POST /api/trials/{anonId}/chat")
		log.Println("  POST /api/assessments")
		log.Println("  POST /api/ueq/assessments")
		log.Println("  POST /api/translate")
		log.Println("  POST /api/auth/login")
		log.Println("  WS   /api/ws/notifications")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
