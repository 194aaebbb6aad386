package main

import (
	"fmt"
	"log"
	"os"

	"travel-api-server/models"
	"travel-api-server/storage"

	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"
)

// Seeds the reference tables a fresh deployment needs before the API is
// usable: the three roles and a starter set of service types.
func main() {
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}
	storage.InitializeDB()

	roles := []models.Role{
		{Name: "admin"},
		{Name: "provider"},
		{Name: "customer"},
	}
	if err := storage.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		log.Fatalf("seeding roles: %v", err)
	}

	serviceTypes := []models.ServiceType{
		{Name: "Tour", Description: "Guided tours and excursions"},
		{Name: "Hotel", Description: "Accommodation and stays"},
		{Name: "Transport", Description: "Transfers and vehicle rental"},
		{Name: "Food", Description: "Dining and culinary experiences"},
	}
	if err := storage.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&serviceTypes).Error; err != nil {
		log.Fatalf("seeding service types: %v", err)
	}

	fmt.Println("Reference data seeded successfully!")
}
