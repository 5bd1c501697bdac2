package document

import (
	"github.com/nkiryanov/bankdemo/internal/models"
)

// Save document metadata request
// Path only references the bytes, nobody reads them here
type SaveRequest struct {
	ID        int64  `json:"id,omitempty"`
	OwnerName string `json:"ownerName" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Path      string `json:"path" validate:"required"`
}

type Response struct {
	ID        int64  `json:"id"`
	OwnerName string `json:"ownerName"`
	Type      string `json:"type"`
	Path      string `json:"path"`
}

// ToEntity ignores client id, the rest is copied as is
func ToEntity(req SaveRequest) models.DocumentFile {
	return models.DocumentFile{
		OwnerName: req.OwnerName,
		Type:      req.Type,
		Path:      req.Path,
	}
}

func ToResponse(d models.DocumentFile) Response {
	return Response{
		ID:        d.ID,
		OwnerName: d.OwnerName,
		Type:      d.Type,
		Path:      d.Path,
	}
}
