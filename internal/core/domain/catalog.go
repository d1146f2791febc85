package domain

import "errors"

var ErrServiceNotFound = errors.New("service not found")
var ErrServiceImageNotFound = errors.New("service image not found")

// CatalogService is a bookable service offered by the clinic.
// ExecutionTime is the advertised duration of one appointment.
type CatalogService struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	ExecutionTime string  `json:"execution_time"`
	Image         []byte  `json:"-"`
}
