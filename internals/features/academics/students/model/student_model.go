// file: internals/features/academics/students/model/student_model.go
package model

import (
	userModel "soutenance_backend/internals/features/users/user/model"

	"github.com/google/uuid"
)

/* =========================
   Model: StudentModel
========================= */

// StudentModel is the 1–1 academic profile of a user with role student.
// The PK is the user id itself, mirroring the users table.
type StudentModel struct {
	StudentUserID uuid.UUID `gorm:"type:uuid;primaryKey;column:student_user_id" json:"student_user_id"`

	StudentCIN     string `gorm:"type:varchar(20);uniqueIndex;not null;column:student_cin" json:"student_cin"`
	StudentCNE     string `gorm:"type:varchar(20);uniqueIndex;not null;column:student_cne" json:"student_cne"`
	StudentTel     string `gorm:"type:varchar(20);column:student_tel" json:"student_tel"`
	StudentFiliere string `gorm:"type:varchar(100);column:student_filiere;index" json:"student_filiere"`
	StudentNiveau  string `gorm:"type:varchar(50);column:student_niveau" json:"student_niveau"`

	User *userModel.UserModel `gorm:"foreignKey:StudentUserID;references:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (StudentModel) TableName() string { return "students" }
