package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	// Driver pq para PostgreSQL
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"easyinventory/internal/pkg/logger"
)

// PoolConfig agrupa os limites do connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig são os valores usados pela API.
var DefaultPoolConfig = PoolConfig{
	MaxOpenConns:    25,
	MaxIdleConns:    10,
	ConnMaxLifetime: 5 * time.Minute,
	ConnMaxIdleTime: 2 * time.Minute,
}

// NewPostgresDB inicializa e configura o pool de conexões com o PostgreSQL.
// Retorna a conexão *sql.DB pronta para uso, já validada com um ping.
func NewPostgresDB(ctx context.Context, dataSourceName string, pool PoolConfig, log logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	// Garante que as credenciais e o servidor estão corretos
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	log.Info("Pool de Conexões PostgreSQL configurado e pronto.", map[string]interface{}{
		"max_open_conns": pool.MaxOpenConns,
		"max_idle_conns": pool.MaxIdleConns,
	})

	return db, nil
}

// Pinger verifica a conectividade do DB com timeout próprio (usado pelo health check).
type Pinger struct {
	db      *sql.DB
	timeout time.Duration
}

// NewPinger cria um Pinger sobre o pool informado.
func NewPinger(db *sql.DB, timeout time.Duration) *Pinger {
	return &Pinger{db: db, timeout: timeout}
}

// Ping executa um ping no pool respeitando o timeout configurado.
func (p *Pinger) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.db.PingContext(ctx)
}

// Migrate executa um comando goose (up, down, status, version...) sobre os
// scripts do sistema de arquivos informado.
func Migrate(db *sql.DB, migrations fs.FS, log logger.Logger, command string, args ...string) error {
	goose.SetLogger(gooseLogger{log: log})
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose: dialeto inválido: %w", err)
	}

	if err := goose.Run(command, db, ".", args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// gooseLogger redireciona a saída do goose para o logger da aplicação.
type gooseLogger struct {
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), map[string]interface{}{"component": "goose"})
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Fatal("goose", fmt.Errorf(format, v...))
}
