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

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT UNIQUE,
		phone TEXT,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		is_active BOOLEAN NOT NULL,
		email_verified BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createAccountTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE accounts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		balance NUMERIC NOT NULL DEFAULT 0,
		currency TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createBeneficiaryTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE beneficiaries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		bank_name TEXT NOT NULL,
		iban TEXT NOT NULL,
		email TEXT,
		is_verified BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		sender_account_id TEXT NOT NULL,
		type TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		status TEXT NOT NULL,
		reference TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTransferTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transfers (
		id TEXT PRIMARY KEY,
		sender_account_id TEXT NOT NULL,
		beneficiary_id TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		status TEXT NOT NULL,
		reference TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createOTPTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE otps (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		code TEXT NOT NULL,
		purpose TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		is_used BOOLEAN NOT NULL,
		used_at DATETIME,
		attempts INTEGER NOT NULL,
		max_attempts INTEGER NOT NULL,
		created_at DATETIME
	);`)
}

func createNotificationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE notifications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		sent_at DATETIME,
		created_at DATETIME
	);`)
}

func createAllTables(t *testing.T, db *gorm.DB) {
	createUserTable(t, db)
	createAccountTable(t, db)
	createBeneficiaryTable(t, db)
	createTransactionTable(t, db)
	createTransferTable(t, db)
	createOTPTable(t, db)
	createNotificationTable(t, db)
}
