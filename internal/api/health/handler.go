package health

import (
	"net/http"
	"time"

	"easyinventory/internal/api/response"
	"easyinventory/internal/domain"
	"easyinventory/internal/pkg/logger"
)

// Handler responde o health check da API.
type Handler struct {
	Pinger domain.Pinger
	Logger logger.Logger
	now    func() time.Time
}

// NewHandler cria o handler de health check sobre o Pinger do driver de persistência.
func NewHandler(pinger domain.Pinger, log logger.Logger) *Handler {
	return &Handler{Pinger: pinger, Logger: log, now: time.Now}
}

// HealthHandler lida com a requisição GET /api/health.
// @Summary Health check
// @Description Informa se a API está no ar e se o banco responde.
// @Tags health
// @Produce json
// @Success 200 {object} domain.HealthStatus "Banco conectado"
// @Failure 503 {object} domain.HealthStatus "Banco indisponível"
// @Router /health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	status := domain.HealthStatus{
		Status:    "OK",
		Message:   "Easy Inventory API is running",
		Database:  "Connected",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}
	code := http.StatusOK

	if err := h.Pinger.Ping(r.Context()); err != nil {
		h.Logger.Warn("Health check: banco indisponível.", map[string]interface{}{"error": err.Error()})
		status.Status = "DEGRADED"
		status.Database = "Disconnected"
		code = http.StatusServiceUnavailable
	}

	response.JSON(w, h.Logger, code, status)
}
