// Comando inventoryctl é o front-end de terminal da Easy Inventory API.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"easyinventory/internal/client"
	"easyinventory/internal/controller"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Usando apenas o ambiente do sistema.")
	}

	baseURL := os.Getenv("INVENTORY_API_URL")
	if baseURL == "" {
		baseURL = client.DefaultBaseURL
	}
	flag.StringVar(&baseURL, "api", baseURL, "URL base da API")
	noColor := flag.Bool("no-color", false, "desativa cores na saída")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shell := NewShell(controller.New(client.New(baseURL)), color.Output, !*noColor && !color.NoColor)
	if err := shell.Run(ctx, os.Stdin); err != nil {
		log.Fatalf("inventoryctl: %v", err)
	}
}
