// file: internals/features/soutenances/soutenances/service/reconcile.go
package service

import (
	"soutenance_backend/internals/features/soutenances/soutenances/model"
	userModel "soutenance_backend/internals/features/users/user/model"
	"soutenance_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Role reconciliation
========================= */

type ReconcileResult struct {
	PromotedToJury    int `json:"updated_to_jury"`
	DemotedToTeacher  int `json:"updated_to_teacher"`
	TotalFutureJuries int `json:"total_future_jurys"`
}

// ReconcileTeacherRoles recomputes the derived teacher/jury labels in one
// pass, committed atomically. Policy: a user is jury iff they hold at
// least one seat on a soutenance dated today or later; past-only seats do
// not retain jury status. Call after every mutation that can change
// future assignments.
func (s *SoutenanceService) ReconcileTeacherRoles() (*ReconcileResult, error) {
	today := dbtime.DateOnly(s.Now())
	res := &ReconcileResult{}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var futureIDs []uuid.UUID
		if err := tx.Model(&model.JuryModel{}).
			Joins("JOIN soutenances ON soutenances.soutenance_id = juries.jury_soutenance_id").
			Where("soutenances.soutenance_date >= ?", today).
			Distinct().
			Pluck("juries.jury_teacher_id", &futureIDs).Error; err != nil {
			return err
		}

		future := make(map[uuid.UUID]struct{}, len(futureIDs))
		for _, id := range futureIDs {
			future[id] = struct{}{}
		}
		res.TotalFutureJuries = len(future)

		var staff []userModel.UserModel
		if err := tx.Where("user_role IN ?", userModel.ExaminerRoles).Find(&staff).Error; err != nil {
			return err
		}

		for _, u := range staff {
			target := userModel.RoleTeacher
			if _, ok := future[u.UserID]; ok {
				target = userModel.RoleJury
			}
			if u.UserRole == target {
				continue
			}
			if err := tx.Model(&userModel.UserModel{}).
				Where("user_id = ?", u.UserID).
				Update("user_role", target).Error; err != nil {
				return err
			}
			if target == userModel.RoleJury {
				res.PromotedToJury++
			} else {
				res.DemotedToTeacher++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

/* =========================
   Status sweep
========================= */

// SweepStatuses flips planned soutenances with a past date to done.
// Runs before listings and on the background ticker.
func (s *SoutenanceService) SweepStatuses() (int64, error) {
	today := dbtime.DateOnly(s.Now())
	tx := s.DB.Model(&model.SoutenanceModel{}).
		Where("soutenance_statut = ? AND soutenance_date < ?", model.StatutPlanned, today).
		Update("soutenance_statut", model.StatutDone)
	return tx.RowsAffected, tx.Error
}
