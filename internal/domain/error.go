package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int          `json:"code" example:"400"`
	Category string       `json:"category" example:"VALIDATION_ERROR"`
	Message  string       `json:"message" example:"Erro de Validação: o campo name é obrigatório."`
	Fields   []FieldError `json:"fields,omitempty"`
}

// FieldError descreve uma violação de regra em um campo específico do payload.
type FieldError struct {
	Field string `json:"field" example:"name"`
	Tag   string `json:"tag" example:"required"`
	Param string `json:"param,omitempty"`
}

// MessageResponse é usada por operações sem corpo de retorno (ex.: DELETE).
type MessageResponse struct {
	Message string `json:"message" example:"Espaço removido com sucesso."`
}

// HealthStatus é o payload de GET /api/health.
type HealthStatus struct {
	Status    string `json:"status" example:"OK"`
	Message   string `json:"message"`
	Database  string `json:"database" example:"Connected"`
	Timestamp string `json:"timestamp"`
}
