package domain

import "errors"

var ErrSpecialistNotFound = errors.New("specialist not found")
var ErrAvatarNotFound = errors.New("specialist avatar not found")

// Specialist is a directory entry for a single practitioner.
// The avatar is stored as raw image bytes and exposed to clients
// only as a base64 projection.
type Specialist struct {
	ID        int64  `json:"id"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Avatar    []byte `json:"-"`
}
