package handler

// updateServiceRequest is the JSON body of PUT /update_service/:id.
type updateServiceRequest struct {
	Name          string  `json:"name"           validate:"required"`
	Description   string  `json:"description"    validate:"required"`
	Price         float64 `json:"price"          validate:"required,gt=0"`
	ExecutionTime string  `json:"execution_time" validate:"required"`
	ImageBase64   string  `json:"image_base64"   validate:"required,base64"`
}
