// file: internals/features/soutenances/juries/dto/jury_dto.go
package dto

import (
	"soutenance_backend/internals/features/soutenances/soutenances/model"

	"github.com/google/uuid"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type AddJuryMemberRequest struct {
	SoutenanceID uuid.UUID `json:"soutenance_id" validate:"required"`
	TeacherID    uuid.UUID `json:"teacher_id" validate:"required"`
	Role         string    `json:"role" validate:"required,oneof=president member supervisor"`
}

type UpdateJuryRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=president member supervisor"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type JuryMemberResponse struct {
	ID           uuid.UUID `json:"id"`
	SoutenanceID uuid.UUID `json:"soutenance_id"`
	TeacherID    uuid.UUID `json:"teacher_id"`
	TeacherName  string    `json:"teacher_name,omitempty"`
	TeacherEmail string    `json:"teacher_email,omitempty"`
	Role         string    `json:"role"`
	RoleLabel    string    `json:"role_label"`
}

func ToJuryMemberResponse(j *model.JuryModel) JuryMemberResponse {
	out := JuryMemberResponse{
		ID:           j.JuryID,
		SoutenanceID: j.JurySoutenanceID,
		TeacherID:    j.JuryTeacherID,
		Role:         string(j.JuryRole),
		RoleLabel:    RoleLabel(j.JuryRole),
	}
	if j.Teacher != nil {
		out.TeacherName = j.Teacher.FullName()
		out.TeacherEmail = j.Teacher.UserEmail
	}
	return out
}

// RoleLabel is the French UI label for a jury role.
func RoleLabel(r model.JuryRole) string {
	switch r {
	case model.JuryPresident:
		return "Président"
	case model.JurySupervisor:
		return "Encadrant"
	default:
		return "Membre"
	}
}
