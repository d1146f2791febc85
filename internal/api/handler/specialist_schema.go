package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// updateSpecialistRequest is the JSON body of PUT /update_specialist/:id.
// Updates are full replacements: every field must be supplied.
type updateSpecialistRequest struct {
	LastName     string `json:"last_name"     validate:"required"`
	FirstName    string `json:"first_name"    validate:"required"`
	AvatarBase64 string `json:"avatar_base64" validate:"required,base64"`
}
