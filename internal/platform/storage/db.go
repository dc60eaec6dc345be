package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"limban-server-go/internal/platform/errors"
)

// Open connects to the submissions database and runs migrations.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "db.open", "failed to open database", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the enquiry and review tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&ContactSubmission{},
		&DiningSubmission{},
		&GeneralEnquiry{},
		&CorporateEnquiry{},
		&Review{},
	)
	if err != nil {
		return errors.Wrap(errors.KindStorage, "db.migrate", "failed to migrate schema", err)
	}
	return nil
}
