// file: internals/features/soutenances/soutenances/service/engine_test.go
package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"soutenance_backend/internals/features/soutenances/soutenances/model"
	userModel "soutenance_backend/internals/features/users/user/model"
)

var testDate = time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

func seedCohort(t *testing.T, svc *SoutenanceService, nStudents, nTeachers int) {
	t.Helper()
	for i := 0; i < nTeachers; i++ {
		seedTeacher(t, svc.DB, fmt.Sprintf("Teacher%02d", i))
	}
	for i := 0; i < nStudents; i++ {
		seedStudent(t, svc.DB, fmt.Sprintf("CIN%03d", i), "Informatique", "M2")
	}
	seedSalle(t, svc.DB, "A101")
}

func TestScheduleFiliere(t *testing.T) {
	svc := newTestService(t)
	seedCohort(t, svc, 10, 6)

	res, err := svc.ScheduleFiliere(ScheduleParams{
		Filiere: "Informatique",
		Date:    testDate,
	})
	if err != nil {
		t.Fatalf("ScheduleFiliere: %v", err)
	}

	if len(res.Created) != 10 {
		t.Fatalf("created = %d, want 10", len(res.Created))
	}
	if len(res.Unscheduled) != 0 || res.AlreadyScheduled != 0 {
		t.Fatalf("unexpected leftovers: unscheduled=%d skipped=%d",
			len(res.Unscheduled), res.AlreadyScheduled)
	}

	// the count reported must match what was committed
	var inDB int64
	if err := svc.DB.Model(&model.SoutenanceModel{}).Count(&inDB).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if inDB != int64(len(res.Created)) {
		t.Errorf("reported %d created but %d rows in db", len(res.Created), inDB)
	}

	seenSlots := map[int]bool{}
	for _, sout := range res.Created {
		if sout.SoutenanceStatut != model.StatutPlanned {
			t.Errorf("created soutenance has status %s, want planned", sout.SoutenanceStatut)
		}
		if sout.SoutenanceSalleID == nil {
			t.Error("created soutenance has no salle")
		}
		if seenSlots[sout.StartMinutes()] {
			t.Errorf("slot %s used twice", sout.SoutenanceHeureDebut.HHMM())
		}
		seenSlots[sout.StartMinutes()] = true

		// panel invariant: exactly 3 seats, exactly 1 president
		var juries []model.JuryModel
		if err := svc.DB.Where("jury_soutenance_id = ?", sout.SoutenanceID).Find(&juries).Error; err != nil {
			t.Fatalf("load juries: %v", err)
		}
		if len(juries) != 3 {
			t.Errorf("soutenance %s has %d juries, want 3", sout.SoutenanceID, len(juries))
		}
		presidents := 0
		seen := map[uuid.UUID]bool{}
		for _, j := range juries {
			if j.JuryRole == model.JuryPresident {
				presidents++
			}
			if seen[j.JuryTeacherID] {
				t.Errorf("teacher %s sits twice on soutenance %s", j.JuryTeacherID, sout.SoutenanceID)
			}
			seen[j.JuryTeacherID] = true
		}
		if presidents != 1 {
			t.Errorf("soutenance %s has %d presidents, want 1", sout.SoutenanceID, presidents)
		}
	}
}

func TestScheduleFiliereNoExaminerDoubleBooking(t *testing.T) {
	svc := newTestService(t)
	seedCohort(t, svc, 10, 6)

	res, err := svc.ScheduleFiliere(ScheduleParams{Filiere: "Informatique", Date: testDate})
	if err != nil {
		t.Fatalf("ScheduleFiliere: %v", err)
	}

	// collect every (teacher, interval) pair and cross-check them all
	type seat struct {
		teacher    uuid.UUID
		start, end int
	}
	var seats []seat
	for _, sout := range res.Created {
		var juries []model.JuryModel
		if err := svc.DB.Where("jury_soutenance_id = ?", sout.SoutenanceID).Find(&juries).Error; err != nil {
			t.Fatalf("load juries: %v", err)
		}
		for _, j := range juries {
			seats = append(seats, seat{j.JuryTeacherID, sout.StartMinutes(), sout.EndMinutes()})
		}
	}
	for i := range seats {
		for j := i + 1; j < len(seats); j++ {
			if seats[i].teacher == seats[j].teacher &&
				overlaps(seats[i].start, seats[i].end, seats[j].start, seats[j].end) {
				t.Fatalf("teacher %s double-booked over [%d,%d) and [%d,%d)",
					seats[i].teacher, seats[i].start, seats[i].end, seats[j].start, seats[j].end)
			}
		}
	}
}

func TestScheduleFiliereIdempotent(t *testing.T) {
	svc := newTestService(t)
	seedCohort(t, svc, 5, 6)
	params := ScheduleParams{Filiere: "Informatique", Date: testDate}

	if _, err := svc.ScheduleFiliere(params); err != nil {
		t.Fatalf("first run: %v", err)
	}
	res, err := svc.ScheduleFiliere(params)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(res.Created) != 0 {
		t.Errorf("second run created %d soutenances, want 0", len(res.Created))
	}
	if res.AlreadyScheduled != 5 {
		t.Errorf("second run skipped %d, want 5", res.AlreadyScheduled)
	}

	var inDB int64
	if err := svc.DB.Model(&model.SoutenanceModel{}).Count(&inDB).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if inDB != 5 {
		t.Errorf("db has %d soutenances after double run, want 5", inDB)
	}
}

func TestScheduleFiliereSlotExhaustion(t *testing.T) {
	svc := newTestService(t)
	seedCohort(t, svc, 40, 6) // 40 students, only 32 default slots

	res, err := svc.ScheduleFiliere(ScheduleParams{Filiere: "Informatique", Date: testDate})
	if err != nil {
		t.Fatalf("ScheduleFiliere: %v", err)
	}

	if len(res.Created) != 32 {
		t.Errorf("created = %d, want the full 32 slots", len(res.Created))
	}
	if len(res.Unscheduled) != 8 {
		t.Errorf("unscheduled = %d, want 8", len(res.Unscheduled))
	}
	if got := len(res.Created) + len(res.Unscheduled) + res.AlreadyScheduled; got != 40 {
		t.Errorf("cohort accounting %d, want 40", got)
	}
}

func TestScheduleFiliereSkipsBusySlot(t *testing.T) {
	svc := newTestService(t)

	a := seedTeacher(t, svc.DB, "Alaoui")
	b := seedTeacher(t, svc.DB, "Bennani")
	c := seedTeacher(t, svc.DB, "Chraibi")
	salle := seedSalle(t, svc.DB, "A101")

	// all three examiners are taken at 08:30 by another filière
	other := seedStudent(t, svc.DB, "OTHER", "Mathematiques", "M2")
	seedSoutenance(t, svc.DB, other, &salle, testDate, "08:30", 15, a, b, c)

	seedStudent(t, svc.DB, "CIN001", "Informatique", "M2")

	res, err := svc.ScheduleFiliere(ScheduleParams{Filiere: "Informatique", Date: testDate})
	if err != nil {
		t.Fatalf("ScheduleFiliere: %v", err)
	}
	if len(res.Created) != 1 {
		t.Fatalf("created = %d, want 1", len(res.Created))
	}
	if got := res.Created[0].SoutenanceHeureDebut.HHMM(); got != "08:45" {
		t.Errorf("first free slot = %s, want 08:45", got)
	}
}

func TestScheduleFiliereNoRoomDoubleBooking(t *testing.T) {
	svc := newTestService(t)

	for i := 0; i < 6; i++ {
		seedTeacher(t, svc.DB, fmt.Sprintf("Teacher%02d", i))
	}
	salle := seedSalle(t, svc.DB, "A101")
	seedStudent(t, svc.DB, "INF001", "Informatique", "M2")
	seedStudent(t, svc.DB, "MAT001", "Mathematiques", "M2")

	first, err := svc.ScheduleFiliere(ScheduleParams{Filiere: "Informatique", Date: testDate})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.ScheduleFiliere(ScheduleParams{Filiere: "Mathematiques", Date: testDate})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(first.Created) != 1 || len(second.Created) != 1 {
		t.Fatalf("created %d + %d soutenances, want 1 + 1", len(first.Created), len(second.Created))
	}

	// both runs share the only salle, so their intervals must not overlap
	var rows []model.SoutenanceModel
	if err := svc.DB.Where("soutenance_date = ?", testDate).Find(&rows).Error; err != nil {
		t.Fatalf("load day: %v", err)
	}
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			a, b := &rows[i], &rows[j]
			if a.SoutenanceSalleID != nil && b.SoutenanceSalleID != nil &&
				*a.SoutenanceSalleID == *b.SoutenanceSalleID &&
				overlaps(a.StartMinutes(), a.EndMinutes(), b.StartMinutes(), b.EndMinutes()) {
				t.Fatalf("salle %s double-booked over [%d,%d) and [%d,%d)",
					salle.SalleID, a.StartMinutes(), a.EndMinutes(), b.StartMinutes(), b.EndMinutes())
			}
		}
	}

	// with 08:30 taken by the first run, the second settles on 08:45
	if got := second.Created[0].SoutenanceHeureDebut.HHMM(); got != "08:45" {
		t.Errorf("second run slot = %s, want 08:45", got)
	}
}

func TestScheduleFilierePreconditions(t *testing.T) {
	t.Run("no students", func(t *testing.T) {
		svc := newTestService(t)
		seedTeacher(t, svc.DB, "Alaoui")
		seedSalle(t, svc.DB, "A101")

		_, err := svc.ScheduleFiliere(ScheduleParams{Filiere: "Informatique", Date: testDate})
		if !errors.Is(err, ErrNoStudents) {
			t.Fatalf("err = %v, want ErrNoStudents", err)
		}
	})

	t.Run("no salles", func(t *testing.T) {
		svc := newTestService(t)
		seedTeacher(t, svc.DB, "Alaoui")
		seedStudent(t, svc.DB, "CIN001", "Informatique", "M2")

		_, err := svc.ScheduleFiliere(ScheduleParams{Filiere: "Informatique", Date: testDate})
		if !errors.Is(err, ErrNoSalles) {
			t.Fatalf("err = %v, want ErrNoSalles", err)
		}
	})

	t.Run("not enough teachers", func(t *testing.T) {
		svc := newTestService(t)
		seedTeacher(t, svc.DB, "Alaoui")
		seedTeacher(t, svc.DB, "Bennani")
		seedStudent(t, svc.DB, "CIN001", "Informatique", "M2")
		seedSalle(t, svc.DB, "A101")

		_, err := svc.ScheduleFiliere(ScheduleParams{Filiere: "Informatique", Date: testDate})
		if !errors.Is(err, ErrNotEnoughTeachers) {
			t.Fatalf("err = %v, want ErrNotEnoughTeachers", err)
		}

		// nothing may be written when the day is infeasible
		var inDB int64
		if err := svc.DB.Model(&model.SoutenanceModel{}).Count(&inDB).Error; err != nil {
			t.Fatalf("count: %v", err)
		}
		if inDB != 0 {
			t.Errorf("infeasible day wrote %d soutenances", inDB)
		}
	})
}

func TestScheduleFiliereReconcilesRoles(t *testing.T) {
	svc := newTestService(t)
	seedCohort(t, svc, 1, 3)

	if _, err := svc.ScheduleFiliere(ScheduleParams{Filiere: "Informatique", Date: testDate}); err != nil {
		t.Fatalf("ScheduleFiliere: %v", err)
	}

	// the 3 seated examiners hold a future assignment, all become jury
	var juryCount int64
	if err := svc.DB.Model(&userModel.UserModel{}).
		Where("user_role = ?", userModel.RoleJury).
		Count(&juryCount).Error; err != nil {
		t.Fatalf("count juries: %v", err)
	}
	if juryCount != 3 {
		t.Errorf("jury role count = %d, want 3", juryCount)
	}
}
