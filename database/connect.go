// file: database/connect.go
package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"hyperion/models"
)

var DB *gorm.DB

func Connect() {
	dsn := os.Getenv("HYPERION_MYSQL_DSN")
	if dsn == "" {
		dsn = "root:123456@tcp(localhost:3306)/hyperion?charset=utf8mb4&parseTime=True&loc=Local"
	}
	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	// Connections older than an hour are re-established before reuse,
	// which keeps us clear of MySQL's wait_timeout.
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection successfully established and connection pool configured.")
}

func MigrateTables() {
	err := DB.AutoMigrate(
		&models.CompetitionEdition{},
		&models.SchoolExtension{},
		&models.SchoolGeneralQuota{},
		&models.SchoolSportQuota{},
		&models.SchoolProductQuota{},
		&models.Sport{},
		&models.CompetitionTeam{},
		&models.CompetitionParticipant{},
		&models.CompetitionUser{},
		&models.CompetitionProduct{},
		&models.CompetitionProductVariant{},
		&models.CompetitionPurchase{},
		&models.CompetitionPayment{},
		&models.CompetitionCheckout{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("Database migration completed.")
}
