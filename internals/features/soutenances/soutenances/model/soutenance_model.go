// file: internals/features/soutenances/soutenances/model/soutenance_model.go
package model

import (
	"time"

	salleModel "soutenance_backend/internals/features/academics/salles/model"
	studentModel "soutenance_backend/internals/features/academics/students/model"
	"soutenance_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enum
========================= */

type SoutenanceStatut string

const (
	StatutPlanned   SoutenanceStatut = "planned"
	StatutDone      SoutenanceStatut = "done"
	StatutCancelled SoutenanceStatut = "cancelled"
)

func (s SoutenanceStatut) Valid() bool {
	switch s {
	case StatutPlanned, StatutDone, StatutCancelled:
		return true
	}
	return false
}

/* =========================
   Model: SoutenanceModel
========================= */

// SoutenanceModel is one scheduled oral defense. At most one row exists
// per (student, date); the engine checks before inserting and the unique
// index backs it up.
type SoutenanceModel struct {
	SoutenanceID        uuid.UUID  `gorm:"type:uuid;primaryKey;column:soutenance_id" json:"soutenance_id"`
	SoutenanceStudentID uuid.UUID  `gorm:"type:uuid;not null;column:soutenance_student_id;uniqueIndex:uq_soutenance_student_date" json:"soutenance_student_id"`
	SoutenanceSalleID   *uuid.UUID `gorm:"type:uuid;column:soutenance_salle_id;index" json:"soutenance_salle_id"`

	SoutenanceDate         time.Time  `gorm:"type:date;not null;column:soutenance_date;uniqueIndex:uq_soutenance_student_date;index" json:"soutenance_date"`
	SoutenanceHeureDebut   dbtime.Tod `gorm:"type:time;not null;column:soutenance_heure_debut" json:"soutenance_heure_debut"`
	SoutenanceDureeMinutes int        `gorm:"not null;default:15;column:soutenance_duree_minutes" json:"soutenance_duree_minutes"`

	SoutenanceStatut SoutenanceStatut `gorm:"type:varchar(20);not null;default:'planned';column:soutenance_statut" json:"soutenance_statut"`

	SoutenanceCreatedAt time.Time `gorm:"column:soutenance_created_at;autoCreateTime" json:"soutenance_created_at"`

	Student *studentModel.StudentModel `gorm:"foreignKey:SoutenanceStudentID;references:StudentUserID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Salle   *salleModel.SalleModel     `gorm:"foreignKey:SoutenanceSalleID;references:SalleID" json:"salle,omitempty"`
	Juries  []JuryModel                `gorm:"foreignKey:JurySoutenanceID;references:SoutenanceID" json:"juries,omitempty"`
}

func (SoutenanceModel) TableName() string { return "soutenances" }

func (s *SoutenanceModel) BeforeCreate(tx *gorm.DB) error {
	if s.SoutenanceID == uuid.Nil {
		s.SoutenanceID = uuid.New()
	}
	return nil
}

// EndMinutes is start + duration in minutes from midnight. A soutenance
// occupies the half-open interval [start, end); two soutenances touching
// at a boundary do not conflict.
func (s *SoutenanceModel) StartMinutes() int {
	return s.SoutenanceHeureDebut.MinutesFromMidnight()
}

func (s *SoutenanceModel) EndMinutes() int {
	return s.StartMinutes() + s.SoutenanceDureeMinutes
}
