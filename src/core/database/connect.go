package database

import (
	"fmt"

	"OperatorsClub/src/core/config"
	"OperatorsClub/src/core/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Connect opens the Postgres connection once at startup. The returned handle
// is passed into every handler that needs it instead of living in a package
// global, so tests can swap in their own store.
func Connect() (*gorm.DB, error) {
	// Fetch configuration values from environment or config files
	host := config.Config("DB_HOST")
	port := config.Config("DB_PORT")
	user := config.Config("DB_USER")
	password := config.Config("DB_PASSWORD")
	dbname := config.Config("DB_NAME")

	// Build the connection string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Disable automatic statement caching; the hosted pooler rejects
		// prepared statements across pooled connections
		PrepareStmt: false,

		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}
	return db, nil
}

// AutoMigrate creates the schema for local development and tests. The hosted
// database is migrated by the platform, so main only runs this behind the
// DB_AUTO_MIGRATE flag.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.Repo{},
		&models.Tag{},
		&models.EntityTag{},
		&models.Like{},
		&models.ContactMessage{},
		&models.ClubApplication{},
		&models.WaitlistEntry{},
		&models.ProgramRegistration{},
	)
}
