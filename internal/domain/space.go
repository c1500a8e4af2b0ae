package domain

import (
	"strings"
	"time"
)

// SpaceType classifica o espaço físico ou lógico.
type SpaceType string

// Tipos de espaço aceitos.
const (
	SpaceTypeWarehouse SpaceType = "warehouse"
	SpaceTypeRetail    SpaceType = "retail"
	SpaceTypeOffice    SpaceType = "office"
	SpaceTypeHome      SpaceType = "home"
	SpaceTypeOther     SpaceType = "other"
)

// SpaceTypes lista os tipos válidos na ordem de apresentação.
var SpaceTypes = []SpaceType{SpaceTypeWarehouse, SpaceTypeRetail, SpaceTypeOffice, SpaceTypeHome, SpaceTypeOther}

// Space representa um local nomeado (armazém, loja, escritório...) que agrupa itens de inventário.
// @Description Espaço de inventário.
type Space struct {
	ID          string    `json:"id" example:"3c95b8c8-8a43-4d9f-9d7e-7f3c5d3e2a10"`
	Name        string    `json:"name" validate:"required" example:"Main Warehouse"`
	Description string    `json:"description"`
	Type        SpaceType `json:"type" validate:"oneof=warehouse retail office home other" example:"warehouse"`
	Location    string    `json:"location" validate:"required" example:"Building A"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Normalize remove espaços das bordas dos campos texto e aplica o tipo padrão.
func (s *Space) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
	s.Location = strings.TrimSpace(s.Location)
	s.Type = SpaceType(strings.ToLower(strings.TrimSpace(string(s.Type))))
	if s.Type == "" {
		s.Type = SpaceTypeWarehouse
	}
}

// SpacePatch carrega apenas os campos enviados num PUT. Campos nil mantêm o valor atual.
type SpacePatch struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Type        *SpaceType `json:"type"`
	Location    *string    `json:"location"`
}

// Apply devolve uma cópia de space com os campos do patch aplicados.
func (p SpacePatch) Apply(space Space) Space {
	if p.Name != nil {
		space.Name = *p.Name
	}
	if p.Description != nil {
		space.Description = *p.Description
	}
	if p.Type != nil {
		space.Type = *p.Type
	}
	if p.Location != nil {
		space.Location = *p.Location
	}
	space.Normalize()
	return space
}
