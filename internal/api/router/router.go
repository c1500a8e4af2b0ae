package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"easyinventory/docs"
	"easyinventory/internal/api/health"
	"easyinventory/internal/api/item"
	"easyinventory/internal/api/space"
	"easyinventory/internal/pkg/cache"
	"easyinventory/internal/pkg/logger"
	"easyinventory/internal/pkg/middleware"
)

// Options reúne os ajustes dos middlewares globais.
type Options struct {
	CORSAllowedOrigin string
	// Cache nil desativa o rate limiting.
	Cache           cache.Client
	RateLimit       int
	RateLimitPeriod time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(spaces *space.Handler, items *item.Handler, healthHandler *health.Handler, opts Options, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// --- 1. Health Check ---
	mux.HandleFunc("GET /api/health", healthHandler.HealthHandler)

	// --- 2. Espaços ---
	mux.HandleFunc("GET /api/spaces", spaces.ListSpacesHandler)
	mux.HandleFunc("POST /api/spaces", spaces.CreateSpaceHandler)
	mux.HandleFunc("GET /api/spaces/{id}", spaces.GetSpaceByIDHandler)
	mux.HandleFunc("PUT /api/spaces/{id}", spaces.UpdateSpaceHandler)
	mux.HandleFunc("DELETE /api/spaces/{id}", spaces.DeleteSpaceHandler)
	mux.HandleFunc("GET /api/spaces/{id}/summary", spaces.SummaryHandler)

	// --- 3. Itens ---
	mux.HandleFunc("GET /api/items/space/{spaceId}", items.ListBySpaceHandler)
	mux.HandleFunc("POST /api/items", items.CreateItemHandler)
	mux.HandleFunc("GET /api/items/{id}", items.GetItemByIDHandler)
	mux.HandleFunc("PUT /api/items/{id}", items.UpdateItemHandler)
	mux.HandleFunc("PATCH /api/items/{id}/quantity", items.UpdateQuantityHandler)
	mux.HandleFunc("DELETE /api/items/{id}", items.DeleteItemHandler)

	// --- 4. Documentação ---
	mux.HandleFunc("GET /swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(docs.SwaggerJSON)
	})
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 5. Middlewares globais (o primeiro é o mais externo) ---
	chain := []middleware.Middleware{
		middleware.Recoverer(log),
		middleware.RequestLogger(log),
		middleware.CORS(opts.CORSAllowedOrigin),
	}
	if opts.Cache != nil {
		chain = append(chain, middleware.RateLimiter(opts.Cache, opts.RateLimit, opts.RateLimitPeriod, log))
	}

	return middleware.Chain(mux, chain...)
}
