// file: internals/features/academics/students/dto/student_dto.go
package dto

import (
	"strings"

	"soutenance_backend/internals/features/academics/students/model"

	"github.com/google/uuid"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateStudentRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=150"`
	Prenom   string `json:"prenom" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"required,email,max=200"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	CIN      string `json:"cin" validate:"required,max=20"`
	CNE      string `json:"cne" validate:"required,max=20"`
	Tel      string `json:"tel" validate:"omitempty,max=20"`
	Filiere  string `json:"filiere" validate:"required,max=100"`
	Niveau   string `json:"niveau" validate:"omitempty,max=50"`
}

func (r *CreateStudentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Prenom = strings.TrimSpace(r.Prenom)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.CIN = strings.TrimSpace(r.CIN)
	r.CNE = strings.TrimSpace(r.CNE)
	r.Filiere = strings.TrimSpace(r.Filiere)
	r.Niveau = strings.TrimSpace(r.Niveau)
}

type UpdateStudentRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Prenom  *string `json:"prenom,omitempty" validate:"omitempty,max=100"`
	Tel     *string `json:"tel,omitempty" validate:"omitempty,max=20"`
	Filiere *string `json:"filiere,omitempty" validate:"omitempty,max=100"`
	Niveau  *string `json:"niveau,omitempty" validate:"omitempty,max=50"`
}

/* =======================================================
   RESPONSE DTO
   ======================================================= */

type StudentResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email,omitempty"`
	CIN     string    `json:"cin"`
	CNE     string    `json:"cne"`
	Tel     string    `json:"tel,omitempty"`
	Filiere string    `json:"filiere"`
	Niveau  string    `json:"niveau,omitempty"`
}

func ToStudentResponse(m *model.StudentModel) StudentResponse {
	out := StudentResponse{
		ID:      m.StudentUserID,
		CIN:     m.StudentCIN,
		CNE:     m.StudentCNE,
		Tel:     m.StudentTel,
		Filiere: m.StudentFiliere,
		Niveau:  m.StudentNiveau,
	}
	if m.User != nil {
		out.Name = m.User.FullName()
		out.Email = m.User.UserEmail
	}
	return out
}
