package main

import (
	"context"
	"errors"
	"log"
	"os"

	"coursehub-backend/config"
	httpDelivery "coursehub-backend/internal/delivery/http"
	"coursehub-backend/internal/domain"
	"coursehub-backend/internal/repository"
	"coursehub-backend/internal/usecase"
)

func main() {
	// Connect to databases
	db := config.ConnectDB()
	postgres := db.PG
	mongo := db.Mongo

	// Auto migrate
	if err := config.AutoMigrate(postgres); err != nil {
		log.Fatal("Migration failed:", err)
	}
	if err := repository.EnsureContentIndexes(context.Background(), mongo); err != nil {
		log.Fatal("Mongo index setup failed:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(postgres)
	courseRepo := repository.NewCourseRepository(postgres)
	enrollmentRepo := repository.NewEnrollmentRepository(postgres)
	cartRepo := repository.NewCartRepository(postgres)
	moduleRepo := repository.NewModuleRepository(mongo)
	videoRepo := repository.NewVideoRepository(mongo)
	assetRepo, err := repository.NewAssetRepository(mongo)
	if err != nil {
		log.Fatal("GridFS bucket setup failed:", err)
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(userRepo)
	userUsecase := usecase.NewUserUsecase(userRepo)
	courseUsecase := usecase.NewCourseUsecase(courseRepo, moduleRepo, videoRepo)
	contentUsecase := usecase.NewContentUsecase(courseRepo, moduleRepo, videoRepo)
	enrollmentUsecase := usecase.NewEnrollmentUsecase(enrollmentRepo, courseRepo, moduleRepo, videoRepo)
	cartUsecase := usecase.NewCartUsecase(cartRepo, courseRepo, enrollmentRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(userRepo, courseRepo, enrollmentRepo)

	// Seed the initial admin account
	seedAdmin(userRepo)

	// Initialize handlers and router
	handler := httpDelivery.NewHandler(
		authUsecase,
		userUsecase,
		courseUsecase,
		contentUsecase,
		enrollmentUsecase,
		cartUsecase,
		dashboardUsecase,
		assetRepo,
	)
	router := httpDelivery.InitRouter(handler)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server running on port %s", port)
	log.Printf("API: http://localhost:%s/api/v1", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func seedAdmin(userRepo domain.UserRepository) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	admin, err := domain.NewUser("Administrator", email, password, domain.RoleAdmin)
	if err != nil {
		log.Printf("Failed to seed admin: %v", err)
		return
	}
	admin.IsApproved = true
	if err := userRepo.Create(context.Background(), admin); err != nil && !errors.Is(err, domain.ErrConflict) {
		log.Printf("Failed to seed admin: %v", err)
	}
}
