// file: internals/features/soutenances/soutenances/service/queries_test.go
package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"soutenance_backend/internals/features/soutenances/soutenances/model"
	userModel "soutenance_backend/internals/features/users/user/model"
)

func TestListByDate(t *testing.T) {
	svc := newTestService(t)
	date := testToday.AddDate(0, 0, 5)

	salle := seedSalle(t, svc.DB, "A101")
	info := seedStudent(t, svc.DB, "C1", "Informatique", "M2")
	math := seedStudent(t, svc.DB, "C2", "Mathematiques", "M1")
	late := seedStudent(t, svc.DB, "C3", "Informatique", "M2")

	// inserted out of order on purpose
	seedSoutenance(t, svc.DB, late, &salle, date, "11:00", 15)
	seedSoutenance(t, svc.DB, info, &salle, date, "09:00", 15)
	seedSoutenance(t, svc.DB, math, &salle, date, "10:00", 15)

	rows, err := svc.ListByDate(date, "", "")
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].StartMinutes() > rows[i].StartMinutes() {
			t.Errorf("rows not ordered by start time: %s before %s",
				rows[i-1].SoutenanceHeureDebut.HHMM(), rows[i].SoutenanceHeureDebut.HHMM())
		}
	}

	rows, err = svc.ListByDate(date, "Informatique", "M2")
	if err != nil {
		t.Fatalf("ListByDate filtered: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("filiere filter got %d rows, want 2", len(rows))
	}
	for _, r := range rows {
		if r.Student == nil || r.Student.StudentFiliere != "Informatique" {
			t.Errorf("row leaked from another filiere: %+v", r.Student)
		}
	}
}

func TestStats(t *testing.T) {
	svc := newTestService(t)
	date := testToday.AddDate(0, 0, 5)

	salle := seedSalle(t, svc.DB, "A101")
	s1 := seedStudent(t, svc.DB, "C1", "Informatique", "M2")
	seedStudent(t, svc.DB, "C2", "Informatique", "M2")
	seedStudent(t, svc.DB, "C3", "Mathematiques", "M1")
	seedSoutenance(t, svc.DB, s1, &salle, date, "09:00", 15)

	stats, err := svc.Stats("Informatique", "", date)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalStudents != 2 || stats.WithSoutenance != 1 || stats.WithoutSoutenance != 1 {
		t.Errorf("stats = %+v, want 2/1/1", stats)
	}
}

func TestUpdateStatut(t *testing.T) {
	svc := newTestService(t)
	salle := seedSalle(t, svc.DB, "A101")
	st := seedStudent(t, svc.DB, "C1", "Informatique", "M2")
	sout := seedSoutenance(t, svc.DB, st, &salle, testToday.AddDate(0, 0, 5), "09:00", 15)

	old, err := svc.UpdateStatut(sout.SoutenanceID, model.StatutCancelled)
	if err != nil {
		t.Fatalf("UpdateStatut: %v", err)
	}
	if old != model.StatutPlanned {
		t.Errorf("old status = %s, want planned", old)
	}

	if _, err := svc.UpdateStatut(uuid.New(), model.StatutDone); !errors.Is(err, ErrSoutenanceNotFound) {
		t.Errorf("missing id err = %v, want ErrSoutenanceNotFound", err)
	}
}

func TestDeleteCascadesAndReconciles(t *testing.T) {
	svc := newTestService(t)

	a := seedTeacher(t, svc.DB, "Alaoui")
	b := seedTeacher(t, svc.DB, "Bennani")
	salle := seedSalle(t, svc.DB, "A101")
	st := seedStudent(t, svc.DB, "C1", "Informatique", "M2")
	sout := seedSoutenance(t, svc.DB, st, &salle, testToday.AddDate(0, 0, 5), "09:00", 15, a, b)

	// the seats are future, so both examiners carry the jury label
	if _, err := svc.ReconcileTeacherRoles(); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	deleted, err := svc.Delete(sout.SoutenanceID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted jury rows = %d, want 2", deleted)
	}

	var juryRows int64
	if err := svc.DB.Model(&model.JuryModel{}).Count(&juryRows).Error; err != nil {
		t.Fatalf("count juries: %v", err)
	}
	if juryRows != 0 {
		t.Errorf("%d orphan jury rows left", juryRows)
	}

	// freed examiners fall back to teacher
	var stillJury int64
	if err := svc.DB.Model(&userModel.UserModel{}).
		Where("user_role = ?", userModel.RoleJury).
		Count(&stillJury).Error; err != nil {
		t.Fatalf("count jury roles: %v", err)
	}
	if stillJury != 0 {
		t.Errorf("%d users still hold jury role after delete", stillJury)
	}

	if _, err := svc.Delete(uuid.New()); !errors.Is(err, ErrSoutenanceNotFound) {
		t.Errorf("missing id err = %v, want ErrSoutenanceNotFound", err)
	}
}

// a committed delete stays a success even when the follow-up role
// reconciliation cannot run
func TestDeleteSucceedsWhenReconcileFails(t *testing.T) {
	svc := newTestService(t)

	a := seedTeacher(t, svc.DB, "Alaoui")
	salle := seedSalle(t, svc.DB, "A101")
	st := seedStudent(t, svc.DB, "C1", "Informatique", "M2")
	sout := seedSoutenance(t, svc.DB, st, &salle, testToday.AddDate(0, 0, 5), "09:00", 15, a)

	// break reconciliation only: the delete itself never touches users
	if err := svc.DB.Migrator().DropTable("users"); err != nil {
		t.Fatalf("drop users: %v", err)
	}

	deleted, err := svc.Delete(sout.SoutenanceID)
	if err != nil {
		t.Fatalf("Delete returned %v for a committed delete", err)
	}
	if deleted != 1 {
		t.Errorf("deleted jury rows = %d, want 1", deleted)
	}

	var remaining int64
	if err := svc.DB.Model(&model.SoutenanceModel{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 0 {
		t.Errorf("soutenance still present after delete")
	}
}

func TestListAllPagination(t *testing.T) {
	svc := newTestService(t)
	salle := seedSalle(t, svc.DB, "A101")
	for i := 0; i < 5; i++ {
		st := seedStudent(t, svc.DB, string(rune('A'+i)), "Informatique", "M2")
		seedSoutenance(t, svc.DB, st, &salle, testToday.AddDate(0, 0, i+1), "09:00", 15)
	}

	rows, total, err := svc.ListAll(pageParams(1, 3))
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(rows) != 3 {
		t.Errorf("page 1 size = %d, want 3", len(rows))
	}

	rows, _, err = svc.ListAll(pageParams(2, 3))
	if err != nil {
		t.Fatalf("ListAll page 2: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("page 2 size = %d, want 2", len(rows))
	}
}
