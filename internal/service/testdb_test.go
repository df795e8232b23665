package service

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqlite stands in for postgres here, so the DDL carries its own uuid
// defaults instead of gen_random_uuid(). The default must emit canonical
// dashed uuids: gorm scans ids into uuid.UUID and writes them back dashed,
// so a dashless id would never match its own row on update.
const testUuidDefault = `(lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) ||
	'-4' || substr(lower(hex(randomblob(2))),2) || '-' ||
	substr('89ab', abs(random()) % 4 + 1, 1) || substr(lower(hex(randomblob(2))),2) ||
	'-' || lower(hex(randomblob(6))))`

var testSchema = []string{
	fmt.Sprintf(`CREATE TABLE wallets (
		id TEXT PRIMARY KEY DEFAULT %s,
		owner_id TEXT NOT NULL UNIQUE,
		pending_balance REAL NOT NULL DEFAULT 0,
		available_balance REAL NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	)`, testUuidDefault),
	fmt.Sprintf(`CREATE TABLE transactions (
		id TEXT PRIMARY KEY DEFAULT %s,
		order_id TEXT NOT NULL,
		order_code INTEGER NOT NULL,
		kind TEXT NOT NULL,
		status TEXT NOT NULL,
		amount REAL NOT NULL,
		profit_amount REAL DEFAULT 0,
		wallet_id TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`, testUuidDefault),
	fmt.Sprintf(`CREATE TABLE bookings (
		id TEXT PRIMARY KEY DEFAULT %s,
		customer_id TEXT NOT NULL,
		trainer_id TEXT NOT NULL,
		purchased_id TEXT NOT NULL,
		date DATETIME NOT NULL,
		start_at DATETIME NOT NULL,
		end_at DATETIME NOT NULL,
		status TEXT NOT NULL,
		cancelled_refunded BOOLEAN DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	)`, testUuidDefault),
	fmt.Sprintf(`CREATE TABLE order_items (
		id TEXT PRIMARY KEY DEFAULT %s,
		order_id TEXT NOT NULL,
		item_type TEXT NOT NULL,
		ref_id TEXT NOT NULL,
		merchant_id TEXT NOT NULL,
		trainer_id TEXT,
		price REAL NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1,
		original_price REAL,
		is_refunded BOOLEAN DEFAULT 0,
		purchased_id TEXT,
		profit_distribute_planned_date DATETIME,
		profit_distribute_actual_date DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`, testUuidDefault),
	fmt.Sprintf(`CREATE TABLE pt_packages (
		id TEXT PRIMARY KEY DEFAULT %s,
		trainer_id TEXT NOT NULL,
		name TEXT NOT NULL,
		price REAL NOT NULL,
		duration_days INTEGER NOT NULL,
		total_sessions INTEGER NOT NULL,
		is_active BOOLEAN DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	)`, testUuidDefault),
	fmt.Sprintf(`CREATE TABLE scheduled_jobs (
		id TEXT PRIMARY KEY DEFAULT %s,
		name TEXT NOT NULL,
		"group" TEXT NOT NULL,
		trigger_at DATETIME NOT NULL,
		payload TEXT,
		state TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		fired_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (name, "group")
	)`, testUuidDefault),
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared in-memory database so every pooled connection sees the
	// same tables, unique per test to keep schemas isolated.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	for _, ddl := range testSchema {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
