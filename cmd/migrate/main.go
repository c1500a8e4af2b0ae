package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"easyinventory/config"
	"easyinventory/internal/pkg/database"
	"easyinventory/internal/pkg/logger"
	"easyinventory/migrations"
)

// Uso: migrate [up|down|status|version|redo|reset|up-to V|down-to V]
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema: %v", err)
	}

	cfg := config.LoadConfig()
	flag.Parse()

	if cfg.DatabaseURL == "" {
		log.Fatal("goose: DATABASE_URL não definida")
	}

	appLog := logger.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, database.DefaultPoolConfig, appLog)
	if err != nil {
		log.Fatalf("goose: falha ao conectar ao banco: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: falha ao fechar o banco: %v\n", err)
		}
	}()

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	command := arguments[0]
	if err := database.Migrate(db, migrations.FS, appLog, command, arguments[1:]...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}

	fmt.Printf("goose %s success\n", command)
}
