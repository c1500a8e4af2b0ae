// Package bootstrap monta o grafo de dependências da API com go.uber.org/fx.
// Ordem: Config -> Logger -> Persistência/Cache -> Repository -> Service -> Handler -> Router.
package bootstrap

import (
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"easyinventory/config"
	"easyinventory/internal/api/health"
	"easyinventory/internal/api/item"
	"easyinventory/internal/api/router"
	"easyinventory/internal/api/space"
	"easyinventory/internal/pkg/logger"
	"easyinventory/internal/service/itemservice"
	"easyinventory/internal/service/spaceservice"
)

// Module fornece tudo o que a API precisa a partir de um *config.Config.
var Module = fx.Options(
	fx.Provide(
		NewLogger,
		NewStorage,
		NewCache,
		NewRepositories,
		spaceservice.NewService,
		itemservice.NewService,
		newSpaceHandler,
		newItemHandler,
		health.NewHandler,
		NewRouter,
	),
	fx.WithLogger(func(log logger.Logger) fxevent.Logger {
		return &eventLogger{log: log}
	}),
)

// NewLogger cria o logger da aplicação com o nível configurado.
func NewLogger(cfg *config.Config) logger.Logger {
	return logger.NewLogger(cfg.LogLevel)
}

func newSpaceHandler(svc *spaceservice.Service, log logger.Logger) *space.Handler {
	return space.NewHandler(svc, log)
}

func newItemHandler(svc *itemservice.Service, log logger.Logger) *item.Handler {
	return item.NewHandler(svc, log)
}

// NewRouter aplica as opções de middleware da configuração ao roteador.
func NewRouter(spaces *space.Handler, items *item.Handler, healthHandler *health.Handler, c Cache, cfg *config.Config, log logger.Logger) http.Handler {
	return router.NewRouter(spaces, items, healthHandler, router.Options{
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		Cache:             c.Client,
		RateLimit:         cfg.RateLimitMaxRequests,
		RateLimitPeriod:   cfg.RateLimitPeriod,
	}, log)
}

// eventLogger encaminha os eventos do fx para o logger da aplicação.
type eventLogger struct {
	log logger.Logger
}

func (l *eventLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.Provided:
		if e.Err != nil {
			l.log.Error("fx: falha ao registrar construtor "+e.ConstructorName, e.Err)
		}
	case *fxevent.Invoked:
		if e.Err != nil {
			l.log.Error("fx: falha ao invocar "+e.FunctionName, e.Err)
		}
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			l.log.Error("fx: hook OnStart falhou", e.Err)
			return
		}
		l.log.Debug("fx: hook OnStart executado.", map[string]interface{}{"callee": e.FunctionName, "runtime": e.Runtime.String()})
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			l.log.Error("fx: hook OnStop falhou", e.Err)
			return
		}
		l.log.Debug("fx: hook OnStop executado.", map[string]interface{}{"callee": e.FunctionName, "runtime": e.Runtime.String()})
	case *fxevent.Started:
		if e.Err != nil {
			l.log.Error("fx: falha ao iniciar a aplicação", e.Err)
			return
		}
		l.log.Info("Aplicação iniciada.", nil)
	case *fxevent.Stopped:
		if e.Err != nil {
			l.log.Error("fx: falha ao encerrar a aplicação", e.Err)
			return
		}
		l.log.Info("Aplicação encerrada.", nil)
	}
}
