// file: internals/features/soutenances/soutenances/service/queries.go
package service

import (
	"errors"
	"log"
	"time"

	studentModel "soutenance_backend/internals/features/academics/students/model"
	"soutenance_backend/internals/features/soutenances/soutenances/model"
	helper "soutenance_backend/internals/helpers"
	"soutenance_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSoutenanceNotFound = errors.New("soutenance not found")

/* =========================
   Listings
========================= */

// ListByDate returns the soutenances of one date, oldest slot first,
// optionally restricted to a filière/niveau.
func (s *SoutenanceService) ListByDate(date time.Time, filiere, niveau string) ([]model.SoutenanceModel, error) {
	q := s.DB.
		Preload("Student.User").
		Preload("Salle").
		Preload("Juries.Teacher").
		Joins("JOIN students ON students.student_user_id = soutenances.soutenance_student_id").
		Where("soutenance_date = ?", dbtime.DateOnly(date))

	if filiere != "" {
		q = q.Where("students.student_filiere = ?", filiere)
	}
	if niveau != "" {
		q = q.Where("students.student_niveau = ?", niveau)
	}

	var rows []model.SoutenanceModel
	err := q.Order("soutenance_heure_debut ASC").Find(&rows).Error
	return rows, err
}

// ListAll returns a page of soutenances plus the total row count.
func (s *SoutenanceService) ListAll(p helper.PaginationParams) ([]model.SoutenanceModel, int64, error) {
	var total int64
	if err := s.DB.Model(&model.SoutenanceModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, err := p.SafeOrderClause(map[string]string{
		"date":   "soutenance_date",
		"statut": "soutenance_statut",
	}, "date")
	if err != nil {
		return nil, 0, err
	}

	var rows []model.SoutenanceModel
	err = s.DB.
		Preload("Student.User").
		Preload("Salle").
		Preload("Juries.Teacher").
		Order(order).
		Order("soutenance_heure_debut ASC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&rows).Error
	return rows, total, err
}

/* =========================
   Students of a filière
========================= */

// StudentWithSoutenance pairs a student with their soutenance for a given
// date (nil when unscheduled), for the students-without listing.
type StudentWithSoutenance struct {
	Student    studentModel.StudentModel
	Soutenance *model.SoutenanceModel
}

func (s *SoutenanceService) StudentsWithSoutenance(filiere, niveau string, date time.Time) ([]StudentWithSoutenance, error) {
	students, err := s.cohort(filiere, niveau)
	if err != nil {
		return nil, err
	}

	out := make([]StudentWithSoutenance, 0, len(students))
	for i := range students {
		entry := StudentWithSoutenance{Student: students[i]}
		if !date.IsZero() {
			var sout model.SoutenanceModel
			err := s.DB.
				Preload("Salle").
				Where("soutenance_student_id = ? AND soutenance_date = ?",
					students[i].StudentUserID, dbtime.DateOnly(date)).
				First(&sout).Error
			if err == nil {
				entry.Soutenance = &sout
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// Stats counts a cohort's scheduled/unscheduled split. Zero date means
// "any soutenance ever"; otherwise only the given date counts.
type CohortStats struct {
	TotalStudents     int64 `json:"totalStudents"`
	WithSoutenance    int64 `json:"withSoutenance"`
	WithoutSoutenance int64 `json:"withoutSoutenance"`
}

func (s *SoutenanceService) Stats(filiere, niveau string, date time.Time) (*CohortStats, error) {
	base := s.DB.Model(&studentModel.StudentModel{}).Where("student_filiere = ?", filiere)
	if niveau != "" {
		base = base.Where("student_niveau = ?", niveau)
	}

	res := &CohortStats{}
	if err := base.Count(&res.TotalStudents).Error; err != nil {
		return nil, err
	}

	withQ := s.DB.Model(&studentModel.StudentModel{}).
		Joins("JOIN soutenances ON soutenances.soutenance_student_id = students.student_user_id").
		Where("students.student_filiere = ?", filiere)
	if niveau != "" {
		withQ = withQ.Where("students.student_niveau = ?", niveau)
	}
	if !date.IsZero() {
		withQ = withQ.Where("soutenances.soutenance_date = ?", dbtime.DateOnly(date))
	}
	if err := withQ.Distinct("students.student_user_id").Count(&res.WithSoutenance).Error; err != nil {
		return nil, err
	}

	res.WithoutSoutenance = res.TotalStudents - res.WithSoutenance
	return res, nil
}

/* =========================
   Mutations
========================= */

// UpdateStatut sets a soutenance's status, returning the old value.
func (s *SoutenanceService) UpdateStatut(id uuid.UUID, statut model.SoutenanceStatut) (model.SoutenanceStatut, error) {
	var sout model.SoutenanceModel
	if err := s.DB.Where("soutenance_id = ?", id).First(&sout).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrSoutenanceNotFound
		}
		return "", err
	}

	old := sout.SoutenanceStatut
	if err := s.DB.Model(&sout).Update("soutenance_statut", statut).Error; err != nil {
		return "", err
	}
	return old, nil
}

// Delete removes a soutenance and its jury rows in one transaction, then
// reconciles roles so freed teachers drop back to teacher.
func (s *SoutenanceService) Delete(id uuid.UUID) (deletedJuries int64, err error) {
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var sout model.SoutenanceModel
		if err := tx.Where("soutenance_id = ?", id).First(&sout).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSoutenanceNotFound
			}
			return err
		}

		// jury rows first, the FK points at the soutenance
		res := tx.Where("jury_soutenance_id = ?", id).Delete(&model.JuryModel{})
		if res.Error != nil {
			return res.Error
		}
		deletedJuries = res.RowsAffected

		return tx.Delete(&sout).Error
	})
	if err != nil {
		return 0, err
	}

	if _, rerr := s.ReconcileTeacherRoles(); rerr != nil {
		// the delete is committed; a reconciliation failure must not
		// turn it into an error for the caller
		log.Printf("[WARN] role reconciliation after delete failed: %v", rerr)
	}
	return deletedJuries, nil
}
