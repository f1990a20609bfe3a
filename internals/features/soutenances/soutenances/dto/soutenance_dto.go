// file: internals/features/soutenances/soutenances/dto/soutenance_dto.go
package dto

import (
	studentModel "soutenance_backend/internals/features/academics/students/model"
	"soutenance_backend/internals/features/soutenances/soutenances/model"

	"github.com/google/uuid"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type ScheduleRequest struct {
	Filiere      string `json:"filiere" validate:"required,min=1,max=100"`
	Niveau       string `json:"niveau,omitempty" validate:"omitempty,max=50"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime      string `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	DureeMinutes int    `json:"duree_minutes,omitempty" validate:"omitempty,min=1,max=240"`
}

type UpdateStatutRequest struct {
	Statut string `json:"statut" validate:"required,oneof=planned done cancelled"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type TeacherSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

type StudentSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	CNE     string    `json:"cne"`
	Filiere string    `json:"filiere"`
	Niveau  string    `json:"niveau,omitempty"`
}

type SoutenanceResponse struct {
	ID           uuid.UUID        `json:"id"`
	Date         string           `json:"date_soutenance"`
	HeureDebut   string           `json:"heure_debut"`
	DureeMinutes int              `json:"duree_minutes"`
	Salle        *string          `json:"salle"`
	SalleID      *uuid.UUID       `json:"salle_id"`
	Student      *StudentSummary  `json:"student,omitempty"`
	Teachers     []TeacherSummary `json:"teachers"`
	Statut       string           `json:"statut"`
}

type ScheduleResponse struct {
	Status      string               `json:"status"`
	Message     string               `json:"message"`
	Soutenances []SoutenanceResponse `json:"soutenances"`
	Count       int                  `json:"count"`
	Unscheduled []StudentSummary     `json:"unscheduled"`
	Skipped     int                  `json:"already_scheduled"`
}

/* =======================================================
   Converters
   ======================================================= */

func ToStudentSummary(st *studentModel.StudentModel) *StudentSummary {
	if st == nil {
		return nil
	}
	out := &StudentSummary{
		ID:      st.StudentUserID,
		CNE:     st.StudentCNE,
		Filiere: st.StudentFiliere,
		Niveau:  st.StudentNiveau,
	}
	if st.User != nil {
		out.Name = st.User.FullName()
	}
	return out
}

func ToSoutenanceResponse(s *model.SoutenanceModel) SoutenanceResponse {
	out := SoutenanceResponse{
		ID:           s.SoutenanceID,
		Date:         s.SoutenanceDate.Format("2006-01-02"),
		HeureDebut:   s.SoutenanceHeureDebut.HHMM(),
		DureeMinutes: s.SoutenanceDureeMinutes,
		SalleID:      s.SoutenanceSalleID,
		Student:      ToStudentSummary(s.Student),
		Statut:       string(s.SoutenanceStatut),
		Teachers:     make([]TeacherSummary, 0, len(s.Juries)),
	}
	if s.Salle != nil {
		name := s.Salle.SalleName
		out.Salle = &name
	}
	for _, j := range s.Juries {
		t := TeacherSummary{ID: j.JuryTeacherID, Role: string(j.JuryRole)}
		if j.Teacher != nil {
			t.Name = j.Teacher.FullName()
		}
		out.Teachers = append(out.Teachers, t)
	}
	return out
}

func ToSoutenanceResponses(rows []model.SoutenanceModel) []SoutenanceResponse {
	out := make([]SoutenanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToSoutenanceResponse(&rows[i]))
	}
	return out
}
