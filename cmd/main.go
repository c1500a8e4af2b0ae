package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"easyinventory/config"
	"easyinventory/internal/bootstrap"
	"easyinventory/internal/pkg/logger"
)

func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço Easy Inventory...")
	if err := godotenv.Load(); err != nil {
		// As variáveis podem vir do ambiente do sistema (ex: Docker, Lambda).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuração inválida: %v", err)
	}

	// 2. Montagem do grafo de dependências
	if cfg.RunMode == config.RunModeLambda {
		runLambda(cfg)
		return
	}

	fx.New(
		fx.Supply(cfg),
		bootstrap.Module,
		fx.Invoke(registerHTTPServer),
	).Run() // bloqueia até SIGINT/SIGTERM e executa os hooks OnStop
}

// registerHTTPServer liga o servidor HTTP ao ciclo de vida do fx.
func registerHTTPServer(lc fx.Lifecycle, handler http.Handler, cfg *config.Config, log logger.Logger) {
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			log.Info("Servidor Easy Inventory ouvindo na porta", map[string]interface{}{"port": cfg.Port, "env": cfg.Environment})
			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Servidor falhou.", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)
			shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// runLambda expõe o mesmo roteador atrás do API Gateway.
func runLambda(cfg *config.Config) {
	var handler http.Handler
	app := fx.New(
		fx.Supply(cfg),
		bootstrap.Module,
		fx.Populate(&handler),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Falha ao iniciar a aplicação: %v", err)
	}

	adapter := httpadapter.New(handler)
	lambda.Start(adapter.ProxyWithContext)
}
