package helpers

import (
	"database/sql"
	"fmt"

	"github.com/golang/glog"
)

var db *sql.DB

// DBConfig stores the connection information used by InitDBConnection
// to establish a connection to the analytics warehouse
type DBConfig struct {
	Host     string
	Port     int64
	Database string
	Username string
	Password string
}

// InitDBConnection will establish the connection to the warehouse or
// die trying
func InitDBConnection(c DBConfig) {
	var err error
	db, err = sql.Open(
		"postgres",
		fmt.Sprintf(
			"user=%s dbname=%s host=%s port=%d password=%s sslmode=%s",
			c.Username,
			c.Database,
			c.Host,
			c.Port,
			c.Password,
			"disable",
		),
	)
	if err != nil {
		glog.Fatal(fmt.Sprintf("Warehouse connection failed: %v", err.Error()))
	}

	err = db.Ping()
	if err != nil {
		glog.Fatal(err)
	}

	// The warehouse is shared with scheduled reporting jobs, stay well
	// below its connection limit
	db.SetMaxOpenConns(20)
}

// GetConnection returns a connection from the connection pool of the
// already instantiated db object
func GetConnection() (*sql.DB, error) {
	return db, nil
}
