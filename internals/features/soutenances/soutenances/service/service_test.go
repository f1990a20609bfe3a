// file: internals/features/soutenances/soutenances/service/service_test.go
package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	salleModel "soutenance_backend/internals/features/academics/salles/model"
	studentModel "soutenance_backend/internals/features/academics/students/model"
	"soutenance_backend/internals/features/soutenances/soutenances/model"
	userModel "soutenance_backend/internals/features/users/user/model"
	helper "soutenance_backend/internals/helpers"
	"soutenance_backend/internals/helpers/dbtime"
)

func pageParams(page, perPage int) helper.PaginationParams {
	return helper.PaginationParams{Page: page, PerPage: perPage, SortBy: "date", SortOrder: "desc"}
}

// testToday is the pinned "now" for every test; scheduling dates are
// chosen relative to it.
var testToday = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// a per-test database name keeps in-memory state isolated
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&studentModel.StudentModel{},
		&salleModel.SalleModel{},
		&model.SoutenanceModel{},
		&model.JuryModel{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestService(t *testing.T) *SoutenanceService {
	t.Helper()
	svc := NewSoutenanceService(newTestDB(t))
	svc.Now = func() time.Time { return testToday }
	return svc
}

func seedTeacher(t *testing.T, db *gorm.DB, name string) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		UserName:         name,
		UserPrenom:       "Prof",
		UserEmail:        strings.ToLower(name) + "@univ.example",
		UserPasswordHash: "x",
		UserRole:         userModel.RoleTeacher,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed teacher %s: %v", name, err)
	}
	return u
}

func seedStudent(t *testing.T, db *gorm.DB, cin, filiere, niveau string) studentModel.StudentModel {
	t.Helper()
	u := userModel.UserModel{
		UserName:         "Student" + cin,
		UserEmail:        strings.ToLower(cin) + "@etu.example",
		UserPasswordHash: "x",
		UserRole:         userModel.RoleStudent,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed student user %s: %v", cin, err)
	}
	st := studentModel.StudentModel{
		StudentUserID:  u.UserID,
		StudentCIN:     cin,
		StudentCNE:     "CNE" + cin,
		StudentFiliere: filiere,
		StudentNiveau:  niveau,
	}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("seed student %s: %v", cin, err)
	}
	return st
}

func seedSalle(t *testing.T, db *gorm.DB, name string) salleModel.SalleModel {
	t.Helper()
	s := salleModel.SalleModel{SalleName: name}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("seed salle %s: %v", name, err)
	}
	return s
}

// seedSoutenance books one defense with the given jury members.
func seedSoutenance(t *testing.T, db *gorm.DB, st studentModel.StudentModel, salle *salleModel.SalleModel,
	date time.Time, hhmm string, dureeMinutes int, juryMembers ...userModel.UserModel,
) model.SoutenanceModel {
	t.Helper()
	heure, err := dbtime.Parse(hhmm)
	if err != nil {
		t.Fatalf("parse %q: %v", hhmm, err)
	}
	sout := model.SoutenanceModel{
		SoutenanceStudentID:    st.StudentUserID,
		SoutenanceDate:         dbtime.DateOnly(date),
		SoutenanceHeureDebut:   heure,
		SoutenanceDureeMinutes: dureeMinutes,
		SoutenanceStatut:       model.StatutPlanned,
	}
	if salle != nil {
		sout.SoutenanceSalleID = &salle.SalleID
	}
	if err := db.Create(&sout).Error; err != nil {
		t.Fatalf("seed soutenance: %v", err)
	}
	for i, m := range juryMembers {
		role := model.JuryMember
		if i == 0 {
			role = model.JuryPresident
		}
		j := model.JuryModel{
			JurySoutenanceID: sout.SoutenanceID,
			JuryTeacherID:    m.UserID,
			JuryRole:         role,
		}
		if err := db.Create(&j).Error; err != nil {
			t.Fatalf("seed jury: %v", err)
		}
	}
	return sout
}
