// file: internals/features/soutenances/soutenances/service/service.go
package service

import (
	"time"

	"gorm.io/gorm"
)

// SoutenanceService owns scheduling, availability, role reconciliation
// and the status sweep. Salles/Panel are the tie-break strategies (random
// by default); Now is injectable so tests can pin "today".
type SoutenanceService struct {
	DB     *gorm.DB
	Salles SallePicker
	Panel  JurySelector
	Now    func() time.Time
}

func NewSoutenanceService(db *gorm.DB) *SoutenanceService {
	return &SoutenanceService{
		DB:     db,
		Salles: NewRandomSallePicker(),
		Panel:  NewRandomJurySelector(),
		Now:    time.Now,
	}
}
