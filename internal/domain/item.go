package domain

import (
	"strings"
	"time"
)

// Limites dos campos numéricos. Quantidades cabem na coluna INTEGER do
// Postgres; o teto de preço mantém quantity * price finito.
const (
	MaxQuantity = 2147483647
	MaxPrice    = 1000000000
)

// Item representa uma unidade de inventário rastreada dentro de exatamente um Space.
// @Description Item de inventário.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required" example:"Widget"`
	Category    string    `json:"category" validate:"required" example:"Hardware"`
	Quantity    int       `json:"quantity" validate:"min=0,max=2147483647" example:"2"`
	MinStock    int       `json:"minStock" validate:"min=0,max=2147483647" example:"5"` // limite de reposição
	Price       float64   `json:"price" validate:"gte=0,lte=1000000000" example:"1.5"`
	Supplier    string    `json:"supplier"`
	Description string    `json:"description"`
	SpaceID     string    `json:"spaceId" validate:"required,uuid"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Normalize remove espaços das bordas dos campos texto.
func (i *Item) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Category = strings.TrimSpace(i.Category)
	i.Supplier = strings.TrimSpace(i.Supplier)
	i.Description = strings.TrimSpace(i.Description)
	i.SpaceID = strings.TrimSpace(i.SpaceID)
}

// IsLowStock indica se a quantidade atingiu ou ficou abaixo do limite de reposição.
func (i Item) IsLowStock() bool {
	return i.Quantity <= i.MinStock
}

// ItemPatch carrega apenas os campos enviados num PUT de item.
type ItemPatch struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Quantity    *int     `json:"quantity"`
	MinStock    *int     `json:"minStock"`
	Price       *float64 `json:"price"`
	Supplier    *string  `json:"supplier"`
	Description *string  `json:"description"`
	SpaceID     *string  `json:"spaceId"`
}

// Apply devolve uma cópia de item com os campos do patch aplicados.
func (p ItemPatch) Apply(item Item) Item {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.MinStock != nil {
		item.MinStock = *p.MinStock
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Supplier != nil {
		item.Supplier = *p.Supplier
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.SpaceID != nil {
		item.SpaceID = *p.SpaceID
	}
	item.Normalize()
	return item
}

// QuantityUpdate é o payload de PATCH /api/items/{id}/quantity.
type QuantityUpdate struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=2147483647"`
}
