package storage

import (
	"log"
	"os"

	"travel-api-server/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Provider{},
		&models.Customer{},
		&models.ServiceType{},
		&models.Province{},
		&models.Discount{},
		&models.Service{},
		&models.Image{},
		&models.ServiceSchedule{},
		&models.Booking{},
		&models.Review{},
		&models.AuditLog{},
	)
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	return db
}

// InitializeTestDB points the package-level DB at the given handle and runs
// migrations against it. Tests use it with an in-memory sqlite database.
func InitializeTestDB(db *gorm.DB) {
	DB = db
	performMigrations(db)
}
