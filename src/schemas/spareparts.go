package schemas

import (
	"fleet/src/models"
	"fleet/src/utils"
)

type SparepartRequest struct {
	Code          *string  `json:"code"`
	Name          *string  `json:"name"`
	Unit          *string  `json:"unit"`
	Price         *float64 `json:"price"`
	StockQuantity *int     `json:"stock_quantity"`
	Description   *string  `json:"description"`
}

func (r SparepartRequest) Validate(create bool) error {
	v := utils.NewValidationError()
	if create {
		if r.Code == nil {
			v.Add("code", "is required")
		}
		if r.Name == nil {
			v.Add("name", "is required")
		}
	}
	if r.Code != nil {
		v.Require("code", *r.Code)
	}
	if r.Name != nil {
		v.Require("name", *r.Name)
	}
	if r.Price != nil && *r.Price < 0 {
		v.Add("price", "must not be negative")
	}
	if r.StockQuantity != nil && *r.StockQuantity < 0 {
		v.Add("stock_quantity", "must not be negative")
	}
	return v.OrNil()
}

func (r SparepartRequest) ApplyTo(s *models.Sparepart) {
	setString(&s.Code, r.Code)
	setString(&s.Name, r.Name)
	setString(&s.Unit, r.Unit)
	if r.Price != nil {
		s.Price = *r.Price
	}
	if r.StockQuantity != nil {
		s.StockQuantity = *r.StockQuantity
	}
	setString(&s.Description, r.Description)
}
