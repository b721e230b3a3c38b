package db

import (
	"fmt"
	"log"
	"photomind/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

// Init opens the configured SQL database. Nothing is opened (and false is returned)
// when neither MYSQL_DSN nor SQLITE_FILE is set, the catalog then lives in memory only.
func Init() (bool, error) {
	var dialector gorm.Dialector
	if config.MYSQL_DSN != "" {
		log.Printf("Using MySQL catalog")
		dialector = mysql.Open(config.MYSQL_DSN)
	} else if config.SQLITE_FILE != "" {
		log.Printf("Using SQLite catalog: %s", config.SQLITE_FILE)
		dialector = sqlite.Open(config.SQLITE_FILE)
	} else {
		return false, nil
	}
	db, err := Open(dialector)
	if err != nil {
		return false, err
	}
	Instance = db
	return true, nil
}

func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	isSQLite := dialector.Name() == "sqlite"
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            !isSQLite,
	})
	if err != nil || db == nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	if isSQLite {
		// In-memory SQLite databases exist per connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}
