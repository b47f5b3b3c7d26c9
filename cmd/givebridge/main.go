package main

import (
	"context"
	"log"
	"os"

	"github.com/givebridge/givebridge/db"
	"github.com/givebridge/givebridge/internal/auth"
	"github.com/givebridge/givebridge/internal/router"
	"github.com/givebridge/givebridge/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	uploadsDir, err := initPhotoStore()

	if err != nil {
		log.Fatalf("Failed to initialize photo storage: %v", err)
	}

	r := router.NewRouter(uploadsDir)

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "5000"
		log.Println("PORT not set, defaulting to 5000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initPhotoStore wires the configured photo storage driver. It returns
// the local uploads directory when photos are served from disk, or an
// empty string when they live on the object store.
func initPhotoStore() (string, error) {
	switch os.Getenv("STORAGE_DRIVER") {
	case "minio":
		store, err := storage.NewMinioStore(context.Background(), storage.MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    minioBucket(),
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		})
		if err != nil {
			return "", err
		}
		storage.Photos = store
		return "", nil
	default:
		dir := os.Getenv("UPLOAD_DIR")
		if dir == "" {
			dir = "uploads"
		}
		store, err := storage.NewDiskStore(dir, "/uploads")
		if err != nil {
			return "", err
		}
		storage.Photos = store
		return dir, nil
	}
}

func minioBucket() string {
	if bucket := os.Getenv("MINIO_BUCKET"); bucket != "" {
		return bucket
	}
	return "donation-photos"
}
