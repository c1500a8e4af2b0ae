// Package pgtest abre um PostgreSQL real para os testes de integração dos
// repositórios. Os testes são pulados quando TEST_DATABASE_URL não está definida.
package pgtest

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"easyinventory/internal/pkg/database"
	"easyinventory/internal/pkg/logger"
	"easyinventory/migrations"
)

// Open conecta, aplica as migrações e limpa as tabelas antes do teste.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("PostgreSQL not available: TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log := Logger()
	db, err := database.NewPostgresDB(ctx, dsn, database.DefaultPoolConfig, log)
	if err != nil {
		t.Skipf("PostgreSQL not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db, migrations.FS, log, "up"); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if _, err := db.ExecContext(ctx, `TRUNCATE items, spaces`); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	return db
}

// Logger devolve um logger silencioso para os repositórios sob teste.
func Logger() logger.Logger {
	return logger.NewLoggerWithWriter("error", &bytes.Buffer{})
}
