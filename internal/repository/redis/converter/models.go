package converter

import "time"

// ProductRedisModel — представление продукта в кэше: плоская JSON-запись,
// цена — десятичная строка, метки времени — RFC3339.
type ProductRedisModel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
