// file: internals/features/users/user/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enum
========================= */

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleJury    UserRole = "jury"
	RoleAdmin   UserRole = "admin"
)

// ExaminerRoles is the set of roles eligible to sit on a jury panel.
// RoleJury is derived data: reconciliation flips teacher↔jury based on
// future assignments, it is never authoritative input.
var ExaminerRoles = []UserRole{RoleTeacher, RoleJury}

/* =========================
   Model: UserModel
========================= */

type UserModel struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	UserName         string    `gorm:"type:varchar(150);not null;column:user_name" json:"user_name"`
	UserPrenom       string    `gorm:"type:varchar(100);column:user_prenom" json:"user_prenom"`
	UserEmail        string    `gorm:"type:varchar(200);uniqueIndex;not null;column:user_email" json:"user_email"`
	UserPasswordHash string    `gorm:"type:varchar(255);not null;column:user_password_hash" json:"-"`
	UserRole         UserRole  `gorm:"type:varchar(20);not null;column:user_role;index" json:"user_role"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"-"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}

// FullName renders "Prenom Name", the display form used on every endpoint.
func (u *UserModel) FullName() string {
	if u.UserPrenom == "" {
		return u.UserName
	}
	return u.UserPrenom + " " + u.UserName
}
