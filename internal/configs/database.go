package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	model "helpify.com/helpify/internal/models"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

// OpenDatabase connects to the configured store without migrating it.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	d, err := dialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{Logger: gormLog, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := backfillTaskSearchText(db); err != nil {
		return fmt.Errorf("backfill task search text: %w", err)
	}
	return nil
}

// backfillTaskSearchText fills the search columns of rows written before
// they existed.
func backfillTaskSearchText(db *gorm.DB) error {
	var batch []model.Task
	return db.Model(&model.Task{}).
		Where("search_text = ''").
		FindInBatches(&batch, 200, func(_ *gorm.DB, _ int) error {
			for i := range batch {
				batch[i].RefreshSearchText()
				err := db.Model(&model.Task{}).
					Where("id = ?", batch[i].ID).
					Updates(map[string]interface{}{
						"search_text":   batch[i].SearchText,
						"location_text": batch[i].LocationText,
					}).Error
				if err != nil {
					return err
				}
			}
			return nil
		}).Error
}

// NewDatabaseClient opens and migrates the store, exiting on failure.
func NewDatabaseClient(driver, dsn string) *gorm.DB {
	db, err := OpenDatabase(driver, dsn)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
