// file: internals/features/soutenances/soutenances/model/jury_model.go
package model

import (
	userModel "soutenance_backend/internals/features/users/user/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enum
========================= */

type JuryRole string

const (
	JuryPresident  JuryRole = "president"
	JuryMember     JuryRole = "member"
	JurySupervisor JuryRole = "supervisor"
)

func (r JuryRole) Valid() bool {
	switch r {
	case JuryPresident, JuryMember, JurySupervisor:
		return true
	}
	return false
}

// PanelRoles is what the scheduler always assigns, in order. supervisor
// only appears through manual jury CRUD.
var PanelRoles = []JuryRole{JuryPresident, JuryMember, JuryMember}

/* =========================
   Model: JuryModel
========================= */

type JuryModel struct {
	JuryID           uuid.UUID `gorm:"type:uuid;primaryKey;column:jury_id" json:"jury_id"`
	JurySoutenanceID uuid.UUID `gorm:"type:uuid;not null;column:jury_soutenance_id;index;uniqueIndex:uq_jury_soutenance_teacher" json:"jury_soutenance_id"`
	JuryTeacherID    uuid.UUID `gorm:"type:uuid;not null;column:jury_teacher_id;index;uniqueIndex:uq_jury_soutenance_teacher" json:"jury_teacher_id"`
	JuryRole         JuryRole  `gorm:"type:varchar(20);not null;default:'member';column:jury_role" json:"jury_role"`

	Teacher *userModel.UserModel `gorm:"foreignKey:JuryTeacherID;references:UserID;constraint:OnDelete:CASCADE" json:"teacher,omitempty"`
}

func (JuryModel) TableName() string { return "juries" }

func (j *JuryModel) BeforeCreate(tx *gorm.DB) error {
	if j.JuryID == uuid.Nil {
		j.JuryID = uuid.New()
	}
	return nil
}
