package dynamorepo

import (
	"time"

	"easyinventory/internal/domain"
)

// timeLayout tem largura fixa para que created_at ordene lexicograficamente.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SpaceIndex é o GSI da tabela de itens (partição space_id, ordenação created_at).
const SpaceIndex = "space_id-created_at-index"

type spaceRecord struct {
	ID          string `dynamodbav:"id"`
	Name        string `dynamodbav:"name"`
	Description string `dynamodbav:"description"`
	Type        string `dynamodbav:"type"`
	Location    string `dynamodbav:"location"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

type itemRecord struct {
	ID          string  `dynamodbav:"id"`
	Name        string  `dynamodbav:"name"`
	Category    string  `dynamodbav:"category"`
	Quantity    int     `dynamodbav:"quantity"`
	MinStock    int     `dynamodbav:"min_stock"`
	Price       float64 `dynamodbav:"price"`
	Supplier    string  `dynamodbav:"supplier"`
	Description string  `dynamodbav:"description"`
	SpaceID     string  `dynamodbav:"space_id"`
	CreatedAt   string  `dynamodbav:"created_at"`
	UpdatedAt   string  `dynamodbav:"updated_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func toSpaceRecord(s domain.Space) spaceRecord {
	return spaceRecord{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Type:        string(s.Type),
		Location:    s.Location,
		CreatedAt:   formatTime(s.CreatedAt),
		UpdatedAt:   formatTime(s.UpdatedAt),
	}
}

func (r spaceRecord) toDomain() domain.Space {
	return domain.Space{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Type:        domain.SpaceType(r.Type),
		Location:    r.Location,
		CreatedAt:   parseTime(r.CreatedAt),
		UpdatedAt:   parseTime(r.UpdatedAt),
	}
}

func toItemRecord(i domain.Item) itemRecord {
	return itemRecord{
		ID:          i.ID,
		Name:        i.Name,
		Category:    i.Category,
		Quantity:    i.Quantity,
		MinStock:    i.MinStock,
		Price:       i.Price,
		Supplier:    i.Supplier,
		Description: i.Description,
		SpaceID:     i.SpaceID,
		CreatedAt:   formatTime(i.CreatedAt),
		UpdatedAt:   formatTime(i.UpdatedAt),
	}
}

func (r itemRecord) toDomain() domain.Item {
	return domain.Item{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Quantity:    r.Quantity,
		MinStock:    r.MinStock,
		Price:       r.Price,
		Supplier:    r.Supplier,
		Description: r.Description,
		SpaceID:     r.SpaceID,
		CreatedAt:   parseTime(r.CreatedAt),
		UpdatedAt:   parseTime(r.UpdatedAt),
	}
}
