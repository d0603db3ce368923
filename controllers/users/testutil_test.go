package users

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sqlmysql "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bkbadhon/fulus-backend/database"
)

// newMockDB swaps the global DB handle for a sqlmock-backed gorm connection
// for the duration of the test. Expectations are strict: any statement the
// handler runs beyond what the test declares fails the test.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	prev := database.DB
	database.DB = gdb
	t.Cleanup(func() {
		database.DB = prev
		_ = conn.Close()
	})
	return mock
}

// duplicateKeyErr mimics the server-side unique constraint violation that the
// error translation layer maps to gorm.ErrDuplicatedKey.
func duplicateKeyErr() error {
	return &sqlmysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
}

var userCols = []string{"id", "user_id", "sponsor_id", "name", "phone", "status"}

func expectUsersFetch(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(rows)
}
