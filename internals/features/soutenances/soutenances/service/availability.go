// file: internals/features/soutenances/soutenances/service/availability.go
package service

import (
	"time"

	salleModel "soutenance_backend/internals/features/academics/salles/model"
	"soutenance_backend/internals/features/soutenances/soutenances/model"
	userModel "soutenance_backend/internals/features/users/user/model"
	"soutenance_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Interval overlap
========================= */

// overlaps is the canonical half-open interval test: [aStart, aEnd) and
// [bStart, bEnd) conflict iff aStart < bEnd && bStart < aEnd. A defense
// ending 09:00 and one starting 09:00 do not conflict.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

/* =========================
   Day occupancy
========================= */

// dayOccupancy loads every soutenance of the date with its jury rows.
// One day is small (≤32 slots), so conflict checks run in memory and the
// same SQL works on Postgres and the SQLite test driver.
func dayOccupancy(db *gorm.DB, date time.Time) ([]model.SoutenanceModel, error) {
	var rows []model.SoutenanceModel
	err := db.
		Preload("Juries").
		Where("soutenance_date = ?", dbtime.DateOnly(date)).
		Find(&rows).Error
	return rows, err
}

// BusyTeacherIDs returns the staff holding a jury seat on any soutenance
// of the date whose interval overlaps [start, start+duree).
func BusyTeacherIDs(db *gorm.DB, date time.Time, start dbtime.Tod, dureeMinutes int) (map[uuid.UUID]struct{}, error) {
	rows, err := dayOccupancy(db, date)
	if err != nil {
		return nil, err
	}

	probeStart := start.MinutesFromMidnight()
	probeEnd := probeStart + dureeMinutes

	busy := make(map[uuid.UUID]struct{})
	for i := range rows {
		s := &rows[i]
		if !overlaps(probeStart, probeEnd, s.StartMinutes(), s.EndMinutes()) {
			continue
		}
		for _, j := range s.Juries {
			busy[j.JuryTeacherID] = struct{}{}
		}
	}
	return busy, nil
}

// busyTeacherIDsForDate ignores times: anyone with any seat that day.
// Used only by the all-day fast-path heuristic in the engine.
func busyTeacherIDsForDate(db *gorm.DB, date time.Time) (map[uuid.UUID]struct{}, error) {
	rows, err := dayOccupancy(db, date)
	if err != nil {
		return nil, err
	}
	busy := make(map[uuid.UUID]struct{})
	for i := range rows {
		for _, j := range rows[i].Juries {
			busy[j.JuryTeacherID] = struct{}{}
		}
	}
	return busy, nil
}

/* =========================
   Availability oracle
========================= */

// AvailableTeachers lists users with role teacher or jury that are free
// over [start, start+duree) on the date. Both roles are equally eligible;
// reconciliation relabels them afterwards.
func AvailableTeachers(db *gorm.DB, date time.Time, start dbtime.Tod, dureeMinutes int) ([]userModel.UserModel, error) {
	busy, err := BusyTeacherIDs(db, date, start, dureeMinutes)
	if err != nil {
		return nil, err
	}

	var all []userModel.UserModel
	if err := db.Where("user_role IN ?", userModel.ExaminerRoles).Find(&all).Error; err != nil {
		return nil, err
	}

	free := make([]userModel.UserModel, 0, len(all))
	for _, t := range all {
		if _, taken := busy[t.UserID]; !taken {
			free = append(free, t)
		}
	}
	return free, nil
}

// SalleFreeAt reports whether one salle has no overlapping booking over
// [start, start+duree) on the date. The engine checks this per slot so a
// batch never reuses a room another filiere's run already booked.
func SalleFreeAt(db *gorm.DB, date time.Time, salleID uuid.UUID, start dbtime.Tod, dureeMinutes int) (bool, error) {
	rows, err := dayOccupancy(db, date)
	if err != nil {
		return false, err
	}

	probeStart := start.MinutesFromMidnight()
	probeEnd := probeStart + dureeMinutes

	for i := range rows {
		s := &rows[i]
		if s.SoutenanceSalleID == nil || *s.SoutenanceSalleID != salleID {
			continue
		}
		if overlaps(probeStart, probeEnd, s.StartMinutes(), s.EndMinutes()) {
			return false, nil
		}
	}
	return true, nil
}

// AvailableSalles lists rooms with no overlapping booking on the date.
func AvailableSalles(db *gorm.DB, date time.Time, start dbtime.Tod, dureeMinutes int) ([]salleModel.SalleModel, error) {
	rows, err := dayOccupancy(db, date)
	if err != nil {
		return nil, err
	}

	probeStart := start.MinutesFromMidnight()
	probeEnd := probeStart + dureeMinutes

	busySalles := make(map[uuid.UUID]struct{})
	for i := range rows {
		s := &rows[i]
		if s.SoutenanceSalleID == nil {
			continue
		}
		if overlaps(probeStart, probeEnd, s.StartMinutes(), s.EndMinutes()) {
			busySalles[*s.SoutenanceSalleID] = struct{}{}
		}
	}

	var all []salleModel.SalleModel
	if err := db.Find(&all).Error; err != nil {
		return nil, err
	}

	free := make([]salleModel.SalleModel, 0, len(all))
	for _, salle := range all {
		if _, taken := busySalles[salle.SalleID]; !taken {
			free = append(free, salle)
		}
	}
	return free, nil
}
