package initializers

import (
	"database/sql"
	"log"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/lib/pq"
)

var DB *goqu.Database

func ConnectDB() {
	dsn := GetEnv("DB_URL", "")
	if dsn == "" {
		log.Fatal("DB_URL is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}

	// the intake endpoint is low volume; keep the pool small
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	err = db.Ping()
	if err != nil {
		log.Fatal(err)
	}

	DB = goqu.New("postgres", db)
}
