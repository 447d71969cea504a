package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/quill-dev/quill/internal/models"
)

// ConnectDatabase opens the connection pool once at process start; the
// handle is passed down to handlers rather than held as package state.
// TranslateError maps driver duplicate-key failures to gorm.ErrDuplicatedKey
// so uniqueness races surface as conflicts instead of raw driver errors.
func ConnectDatabase(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return nil, err
	}

	return conn, nil
}

func MigrateDatabase(conn *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Session{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
	}

	for _, table := range tables {
		if err := conn.AutoMigrate(table); err != nil {
			return err
		}
	}

	return nil
}
