// file: internals/features/soutenances/soutenances/service/engine.go
package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	salleModel "soutenance_backend/internals/features/academics/salles/model"
	studentModel "soutenance_backend/internals/features/academics/students/model"
	"soutenance_backend/internals/features/soutenances/soutenances/model"
	userModel "soutenance_backend/internals/features/users/user/model"
	"soutenance_backend/internals/helpers/dbtime"

	"gorm.io/gorm"
)

/* =========================
   Errors & params
========================= */

var (
	ErrNoStudents        = errors.New("no students found for this filiere")
	ErrNoSalles          = errors.New("no salle available")
	ErrNotEnoughTeachers = errors.New("not enough teachers/juries available for the day")
)

const panelSize = 3

// below this many teachers free for the whole day, the engine pre-scans
// every slot and bails out before writing if no slot can seat a panel
const fastPathTeacherCount = 6

type ScheduleParams struct {
	Filiere      string
	Niveau       string // empty = all levels
	Date         time.Time
	Start        dbtime.Tod
	End          dbtime.Tod
	DureeMinutes int
}

// ScheduleResult reports every student of the cohort: Created carries the
// new soutenances (relations populated in memory), Unscheduled the
// students the day could not absorb. Already-scheduled students count in
// AlreadyScheduled and are otherwise untouched.
type ScheduleResult struct {
	Message          string
	Created          []model.SoutenanceModel
	Unscheduled      []studentModel.StudentModel
	AlreadyScheduled int
}

func (p *ScheduleParams) applyDefaults() {
	if p.Start.IsZero() {
		p.Start, _ = dbtime.Parse(DefaultStartHHMM)
	}
	if p.End.IsZero() {
		p.End, _ = dbtime.Parse(DefaultEndHHMM)
	}
	if p.DureeMinutes <= 0 {
		p.DureeMinutes = DefaultDureeMinutes
	}
}

/* =========================
   Scheduling engine
========================= */

// ScheduleFiliere assigns every unscheduled student of the filière to a
// slot, a salle and a 3-person jury for one date. The whole batch is one
// transaction: any failure rolls back every pending write. Students the
// day cannot absorb are reported, not errored. Role reconciliation runs
// once after a successful commit.
func (s *SoutenanceService) ScheduleFiliere(p ScheduleParams) (*ScheduleResult, error) {
	p.applyDefaults()
	date := dbtime.DateOnly(p.Date)

	// ---- preconditions, before any write ----
	students, err := s.cohort(p.Filiere, p.Niveau)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoStudents, p.Filiere)
	}

	var salles []salleModel.SalleModel
	if err := s.DB.Find(&salles).Error; err != nil {
		return nil, err
	}
	if len(salles) == 0 {
		return nil, ErrNoSalles
	}

	res := &ScheduleResult{}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// Serialize concurrent runs touching the same day; without this,
		// two simultaneous batches only see each other's committed state
		// and can double-book. SQLite (tests) is single-writer already.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", date.Unix()).Error; err != nil {
				return err
			}
		}

		if err := ensureDayFeasible(tx, date, p); err != nil {
			return err
		}

		// one salle for the whole batch, the common single-exam-room case
		salle := s.Salles.Pick(salles)

		it := NewSlotIterator(p.Start, p.End, p.DureeMinutes)
		slot, slotOK := it.Next()

		for i := range students {
			st := students[i]

			// idempotence: a (student, date) pair is scheduled at most once
			var existing int64
			if err := tx.Model(&model.SoutenanceModel{}).
				Where("soutenance_student_id = ? AND soutenance_date = ?", st.StudentUserID, date).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				res.AlreadyScheduled++
				continue
			}

			found := false
			for slotOK {
				// the salle may already hold a booking from another
				// filiere's run on the same date
				salleFree, err := SalleFreeAt(tx, date, salle.SalleID, slot, p.DureeMinutes)
				if err != nil {
					return err
				}
				if !salleFree {
					slot, slotOK = it.Next()
					continue
				}

				avail, err := AvailableTeachers(tx, date, slot, p.DureeMinutes)
				if err != nil {
					return err
				}
				if len(avail) < panelSize {
					// slot cannot seat a panel, try the next one without
					// advancing the student index
					slot, slotOK = it.Next()
					continue
				}

				sout, err := s.createSoutenance(tx, &students[i], &salle, date, slot, p.DureeMinutes, avail)
				if err != nil {
					return err
				}
				res.Created = append(res.Created, *sout)

				slot, slotOK = it.Next()
				found = true
				break
			}

			if !found {
				res.Unscheduled = append(res.Unscheduled, st)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.ReconcileTeacherRoles(); err != nil {
		// batch is committed; a reconciliation failure must not undo it
		log.Printf("[WARN] role reconciliation after scheduling failed: %v", err)
	}

	res.Message = fmt.Sprintf("%d soutenances created for %s on %s",
		len(res.Created), p.Filiere, date.Format("2006-01-02"))
	return res, nil
}

// createSoutenance writes one planned soutenance plus its jury rows,
// roles fixed president/member/member against the sampled panel.
func (s *SoutenanceService) createSoutenance(
	tx *gorm.DB,
	st *studentModel.StudentModel,
	salle *salleModel.SalleModel,
	date time.Time,
	slot dbtime.Tod,
	dureeMinutes int,
	avail []userModel.UserModel,
) (*model.SoutenanceModel, error) {
	panel := s.Panel.Select(avail, panelSize)

	sout := model.SoutenanceModel{
		SoutenanceStudentID:    st.StudentUserID,
		SoutenanceSalleID:      &salle.SalleID,
		SoutenanceDate:         date,
		SoutenanceHeureDebut:   slot,
		SoutenanceDureeMinutes: dureeMinutes,
		SoutenanceStatut:       model.StatutPlanned,
	}
	if err := tx.Create(&sout).Error; err != nil {
		return nil, err
	}

	juries := make([]model.JuryModel, 0, panelSize)
	for k := range panel {
		j := model.JuryModel{
			JurySoutenanceID: sout.SoutenanceID,
			JuryTeacherID:    panel[k].UserID,
			JuryRole:         model.PanelRoles[k],
		}
		if err := tx.Create(&j).Error; err != nil {
			return nil, err
		}
		j.Teacher = &panel[k]
		juries = append(juries, j)
	}

	sout.Student = st
	sout.Salle = salle
	sout.Juries = juries
	return &sout, nil
}

// cohort loads the students of a filière (optionally one niveau) with
// their user rows. Iteration keeps storage order, as the UI expects.
func (s *SoutenanceService) cohort(filiere, niveau string) ([]studentModel.StudentModel, error) {
	q := s.DB.Preload("User").Where("student_filiere = ?", filiere)
	if niveau != "" {
		q = q.Where("student_niveau = ?", niveau)
	}
	var students []studentModel.StudentModel
	err := q.Find(&students).Error
	return students, err
}

// ensureDayFeasible is the looser early-exit heuristic: with ≥6 teachers
// free all day the loop cannot starve, so skip the pre-scan. Below that,
// probe every slot once and fail before any write if no slot can seat a
// full panel. The main loop re-checks per slot either way.
func ensureDayFeasible(tx *gorm.DB, date time.Time, p ScheduleParams) error {
	busyAllDay, err := busyTeacherIDsForDate(tx, date)
	if err != nil {
		return err
	}
	var eligible int64
	if err := tx.Model(&userModel.UserModel{}).
		Where("user_role IN ?", userModel.ExaminerRoles).
		Count(&eligible).Error; err != nil {
		return err
	}
	if int(eligible)-len(busyAllDay) >= fastPathTeacherCount {
		return nil
	}

	it := NewSlotIterator(p.Start, p.End, p.DureeMinutes)
	for {
		slot, ok := it.Next()
		if !ok {
			break
		}
		avail, err := AvailableTeachers(tx, date, slot, p.DureeMinutes)
		if err != nil {
			return err
		}
		if len(avail) >= panelSize {
			return nil
		}
	}
	return ErrNotEnoughTeachers
}
