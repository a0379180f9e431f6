package models

import "time"

type Sparepart struct {
	ID            string    `db:"id" json:"id"`
	Code          string    `db:"code" json:"code"`
	Name          string    `db:"name" json:"name"`
	Unit          string    `db:"unit" json:"unit"`
	Price         float64   `db:"price" json:"price"`
	StockQuantity int       `db:"stock_quantity" json:"stock_quantity"`
	Description   string    `db:"description" json:"description"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type SparepartUsage struct {
	SparepartID string  `db:"sparepart_id" json:"sparepart_id"`
	Name        string  `db:"name" json:"name"`
	Unit        string  `db:"unit" json:"unit"`
	Price       float64 `db:"price" json:"price"`
	TotalUsed   int     `db:"total_used" json:"total_used"`
}
