package database

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	DBConn *sql.DB
}

// New открывает базу данных и выполняет схему из файла schemaPath
func New(dsn, schemaPath string) (*Database, error) {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dbconn, err := sql.Open("sqlite3", dsn+sep+"_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %v", err)
	}

	if err := dbconn.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %v", err)
	}

	database := &Database{DBConn: dbconn}

	if err := database.executeSchema(schemaPath); err != nil {
		return nil, fmt.Errorf("ошибка выполнения схемы: %v", err)
	}

	return database, nil
}

func (d *Database) executeSchema(schemaPath string) error {
	sqlContent, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла схемы %s: %v", schemaPath, err)
	}

	if _, err := d.DBConn.Exec(string(sqlContent)); err != nil {
		return fmt.Errorf("ошибка выполнения схемы: %v", err)
	}

	return nil
}

func (d *Database) Close() error {
	if d.DBConn != nil {
		return d.DBConn.Close()
	}
	return nil
}

func (d *Database) Ping() error {
	return d.DBConn.Ping()
}
