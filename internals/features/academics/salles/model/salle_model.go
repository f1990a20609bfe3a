// file: internals/features/academics/salles/model/salle_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Model: SalleModel
========================= */

type SalleModel struct {
	SalleID   uuid.UUID `gorm:"type:uuid;primaryKey;column:salle_id" json:"salle_id"`
	SalleName string    `gorm:"type:varchar(150);not null;column:salle_name" json:"salle_name"`

	// free-form equipment tags (projector, visio, ...), not used by the
	// scheduling engine
	SalleFeatures datatypes.JSON `gorm:"column:salle_features" json:"salle_features,omitempty"`

	SalleCreatedAt time.Time      `gorm:"column:salle_created_at;autoCreateTime" json:"salle_created_at"`
	SalleUpdatedAt time.Time      `gorm:"column:salle_updated_at;autoUpdateTime" json:"salle_updated_at"`
	SalleDeletedAt gorm.DeletedAt `gorm:"column:salle_deleted_at;index" json:"-"`
}

func (SalleModel) TableName() string { return "salles" }

func (s *SalleModel) BeforeCreate(tx *gorm.DB) error {
	if s.SalleID == uuid.Nil {
		s.SalleID = uuid.New()
	}
	return nil
}
