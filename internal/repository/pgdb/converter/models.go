package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
// Это приватное для адаптера представление: цена нормализована в копейки,
// доменная сущность этих полей не видит.
type ProductModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	PriceCents  int64     `db:"price_cents"`
	Description *string   `db:"description"`
	Category    *string   `db:"category"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	ProductID   string     `db:"product_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
