package database

import (
	"log"

	"github.com/codetone-labs/codetone-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres connection used for sonification history. An
// empty URL disables persistence entirely and returns a nil handle; callers
// must treat nil as "history off".
func Connect(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		log.Println("💾 History storage: DISABLED (DATABASE_URL not set)")
		return nil, nil
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	log.Println("💾 History storage: ✅ ENABLED")
	return db, nil
}

// Migrate runs schema migrations. A nil handle is a no-op.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&models.SonificationRecord{})
}
