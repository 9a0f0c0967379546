package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Esaius2058/drive-x/config"
	"github.com/Esaius2058/drive-x/database"
	"github.com/Esaius2058/drive-x/handlers"
	"github.com/Esaius2058/drive-x/logger"
	"github.com/Esaius2058/drive-x/middleware"
	"github.com/Esaius2058/drive-x/models"
	"github.com/Esaius2058/drive-x/repositories"
	"github.com/Esaius2058/drive-x/services"
	"github.com/Esaius2058/drive-x/storage"
	"github.com/Esaius2058/drive-x/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("starting drive-x service")

	// Optional in deployment; secrets usually come from the real env.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	if err := database.InitMySQL(&cfg.Database); err != nil {
		log.Fatalf("init mysql failed: %v", err)
	}

	database.DB.AutoMigrate(
		&models.User{},
		&models.Folder{},
		&models.File{},
		&models.FileLog{},
	)
	log.Println("database migration completed")

	if err := database.InitRedis(&cfg.Redis); err != nil {
		log.Fatalf("init redis failed: %v", err)
	}

	objectStore, err := storage.NewB2Store(context.Background(),
		cfg.Storage.B2KeyID, cfg.Storage.B2ApplicationKey, cfg.Storage.Bucket)
	if err != nil {
		log.Fatalf("init object store failed: %v", err)
	}

	repoContainer := repositories.NewGormRepositories(database.DB, database.RedisClient).BuildContainer()
	serviceContainer := services.NewContainer(repoContainer, objectStore)
	handlers.SetServices(serviceContainer)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := utils.RegisterValidators(v); err != nil {
			log.Fatalf("register validators failed: %v", err)
		}
	}

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger())
	setupRoutes(r, repoContainer)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("server listening on http://%s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}

func setupRoutes(r *gin.Engine, repos repositories.Container) {
	r.GET("/health", handlers.Health)

	r.POST("/sign-up", handlers.SignUp)
	r.POST("/log-in", handlers.Login)

	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(repos.RevokedTokens))
	{
		protected.POST("/log-out", handlers.Logout)

		protected.GET("/profile", handlers.GetProfile)
		protected.POST("/profile/update/new-password", handlers.ChangePassword)
		protected.POST("/profile/update/role", middleware.AdminSecret(), handlers.UpdateRole)
		protected.POST("/profile/delete", handlers.DeleteAccount)

		protected.GET("/admin/stats", middleware.RequireAdmin(), handlers.GetAdminStats)

		protected.GET("/folders", handlers.ListFolders)
		protected.POST("/folders/new-folder", handlers.CreateFolder)
		protected.GET("/folders/:id", handlers.GetFolderDetails)
		protected.POST("/folders/delete/:id", handlers.DeleteFolder)

		protected.GET("/file/:id", handlers.DownloadFile)
		protected.POST("/file/upload", handlers.UploadFile)
		protected.POST("/file/update/:id", handlers.RenameFile)
		protected.POST("/file/delete/:id", handlers.ToggleFileTrash)
		protected.DELETE("/file/:id", handlers.DeleteFile)

		protected.POST("/files/upload", handlers.UploadFiles)
	}
}
