package schemas

import (
	"strings"
	"time"

	"fleet/src/utils"
)

// ApiResponse is the envelope returned by every JSON endpoint.
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Size       int `json:"size"`
	TotalPages int `json:"totalPages"`
}

func NewPagination(total, page, size int) Pagination {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Pagination{Total: total, Page: page, Size: size, TotalPages: pages}
}

// Date accepts "2006-01-02" or RFC3339 and keeps only the calendar date.
type Date struct {
	time.Time
}

func NewDate(t time.Time) *Date {
	return &Date{Time: utils.DateOnly(t)}
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := utils.ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = utils.DateOnly(t)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(utils.ShortDashDateLayout) + `"`), nil
}

// Ptr returns nil for a missing or empty date.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

type IDsRequest struct {
	IDs []string `json:"ids"`
}

func (r IDsRequest) Validate() error {
	v := utils.NewValidationError()
	if len(r.IDs) == 0 {
		v.Add("ids", "must contain at least one id")
	}
	for _, id := range r.IDs {
		if strings.TrimSpace(id) == "" {
			v.Add("ids", "must not contain empty ids")
			break
		}
	}
	return v.OrNil()
}

type BulkDeleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
