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

func createContractTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE contracts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		contract_type TEXT NOT NULL,
		template_id TEXT NOT NULL,
		owner_user_id TEXT NOT NULL,
		status TEXT NOT NULL,
		metadata TEXT,
		signed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE contract_versions (
		id TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL,
		version INTEGER NOT NULL CHECK (version > 0),
		content TEXT NOT NULL,
		source TEXT NOT NULL,
		created_by TEXT NOT NULL,
		created_at DATETIME,
		UNIQUE (contract_id, version)
	);`)
	mustExec(t, db, `CREATE TABLE contract_parties (
		id TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL,
		role TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		signature_status TEXT NOT NULL,
		signed_at DATETIME,
		signing_order INTEGER NOT NULL DEFAULT 1 CHECK (signing_order > 0),
		created_at DATETIME,
		UNIQUE (contract_id, email)
	);`)
	mustExec(t, db, `CREATE TABLE activity_logs (
		id TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL,
		action TEXT NOT NULL,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		details TEXT,
		timestamp DATETIME NOT NULL
	);`)
}

func createSignatureTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE signatures (
		id TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL,
		party_id TEXT NOT NULL,
		party_name TEXT,
		document_hash TEXT NOT NULL,
		ip_address TEXT,
		user_agent TEXT,
		geolocation TEXT,
		evidence TEXT,
		signed_at DATETIME NOT NULL
	);`)
	mustExec(t, db, `CREATE TABLE signature_tokens (
		id TEXT PRIMARY KEY,
		token TEXT NOT NULL UNIQUE,
		contract_id TEXT NOT NULL,
		party_id TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		used_at DATETIME,
		created_at DATETIME
	);`)
}

func createGenerationTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE generation_jobs (
		id TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL,
		owner_user_id TEXT NOT NULL,
		contract_type TEXT NOT NULL,
		inputs TEXT NOT NULL,
		status TEXT NOT NULL,
		content TEXT,
		error_message TEXT,
		started_at DATETIME,
		completed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE generation_cache (
		cache_key TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}
