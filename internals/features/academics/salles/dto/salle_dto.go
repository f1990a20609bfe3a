// file: internals/features/academics/salles/dto/salle_dto.go
package dto

import (
	"strings"
	"time"

	"soutenance_backend/internals/features/academics/salles/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateSalleRequest struct {
	SalleName     string         `json:"salle_name" validate:"required,min=1,max=150"`
	SalleFeatures datatypes.JSON `json:"salle_features" validate:"omitempty"`
}

func (r *CreateSalleRequest) Normalize() {
	r.SalleName = strings.TrimSpace(r.SalleName)
}

type UpdateSalleRequest struct {
	SalleName     *string         `json:"salle_name,omitempty" validate:"omitempty,min=1,max=150"`
	SalleFeatures *datatypes.JSON `json:"salle_features,omitempty"`
}

func (r *UpdateSalleRequest) Normalize() {
	if r.SalleName != nil {
		trimmed := strings.TrimSpace(*r.SalleName)
		r.SalleName = &trimmed
	}
}

/* =======================================================
   RESPONSE DTO
   ======================================================= */

type SalleResponse struct {
	SalleID       uuid.UUID      `json:"salle_id"`
	SalleName     string         `json:"salle_name"`
	SalleFeatures datatypes.JSON `json:"salle_features,omitempty"`
	SalleCreated  time.Time      `json:"salle_created_at"`
}

func ToSalleResponse(m model.SalleModel) SalleResponse {
	return SalleResponse{
		SalleID:       m.SalleID,
		SalleName:     m.SalleName,
		SalleFeatures: m.SalleFeatures,
		SalleCreated:  m.SalleCreatedAt,
	}
}
