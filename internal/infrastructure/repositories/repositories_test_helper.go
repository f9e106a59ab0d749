package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE profiles (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		full_name TEXT NOT NULL,
		phone TEXT,
		business_name TEXT,
		tin TEXT,
		account_type TEXT,
		avatar_path TEXT,
		verification_status TEXT NOT NULL DEFAULT 'unverified',
		role TEXT NOT NULL DEFAULT 'client',
		password_hash TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createServiceRequestTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE service_requests (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		service_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		amount TEXT NOT NULL,
		rejection_reason TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPaymentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		request_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		method TEXT NOT NULL,
		transaction_ref TEXT NOT NULL,
		receipt_path TEXT,
		status TEXT NOT NULL DEFAULT 'processing',
		rejection_reason TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createDocumentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE request_documents (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		request_id TEXT,
		file_path TEXT NOT NULL,
		file_name TEXT NOT NULL,
		file_size INTEGER NOT NULL DEFAULT 0,
		content_type TEXT,
		created_at DATETIME
	);`)
}

func createActivityTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_activities (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		description TEXT,
		created_at DATETIME
	);`)
}
