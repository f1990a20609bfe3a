// file: internals/features/soutenances/soutenances/controller/availability_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	salleModel "soutenance_backend/internals/features/academics/salles/model"
	studentModel "soutenance_backend/internals/features/academics/students/model"
	"soutenance_backend/internals/features/soutenances/soutenances/dto"
	"soutenance_backend/internals/features/soutenances/soutenances/service"
	userModel "soutenance_backend/internals/features/users/user/model"
	helper "soutenance_backend/internals/helpers"
	"soutenance_backend/internals/helpers/dbtime"
)

/* =======================================================
   GET /check-slot-availability
   ======================================================= */

// CheckSlot answers "can a defense start at date+time for duree minutes":
// the free examiners, the free salles, and the feasibility flag
// (teachers ≥ 3 AND salles ≥ 1).
func (ctl *SoutenanceController) CheckSlot(c *fiber.Ctx) error {
	dateStr := c.Query("date")
	timeStr := c.Query("time")
	if dateStr == "" || timeStr == "" {
		return helper.Error(c, fiber.StatusBadRequest, "date and time are required")
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
	}
	start, err := dbtime.Parse(timeStr)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid time format, expected HH:MM")
	}
	duree := c.QueryInt("duree", service.DefaultDureeMinutes)

	teachers, err := service.AvailableTeachers(ctl.Service.DB, date, start, duree)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to check teacher availability")
	}
	salles, err := service.AvailableSalles(ctl.Service.DB, date, start, duree)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to check salle availability")
	}

	teacherList := make([]dto.TeacherSummary, 0, len(teachers))
	for i := range teachers {
		teacherList = append(teacherList, dto.TeacherSummary{
			ID:   teachers[i].UserID,
			Name: teachers[i].FullName(),
			Role: string(teachers[i].UserRole),
		})
	}
	salleList := make([]fiber.Map, 0, len(salles))
	for i := range salles {
		salleList = append(salleList, fiber.Map{
			"id":   salles[i].SalleID,
			"name": salles[i].SalleName,
		})
	}

	return c.JSON(fiber.Map{
		"date":               dateStr,
		"time":               timeStr,
		"duration":           duree,
		"available_teachers": len(teachers),
		"teachers_list":      teacherList,
		"available_salles":   len(salles),
		"salles_list":        salleList,
		"is_available":       len(teachers) >= 3 && len(salles) >= 1,
	})
}

/* =======================================================
   GET /availability (per-filière day estimate)
   ======================================================= */

// maxSoutenancesPerTeacher is the rough per-day capacity used by the
// availability estimate (8 working hours / ~1.5h per defense with prep).
const maxSoutenancesPerTeacher = 6

func (ctl *SoutenanceController) DayAvailability(c *fiber.Ctx) error {
	dateStr := c.Query("date")
	filiere := c.Query("filiere")
	if dateStr == "" {
		return helper.Error(c, fiber.StatusBadRequest, "date is required")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
	}

	db := ctl.Service.DB

	var studentsTotal int64
	if err := db.Model(&studentModel.StudentModel{}).
		Where("student_filiere = ?", filiere).
		Count(&studentsTotal).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	var existing int64
	if err := db.Model(&studentModel.StudentModel{}).
		Joins("JOIN soutenances ON soutenances.soutenance_student_id = students.student_user_id").
		Where("students.student_filiere = ? AND soutenances.soutenance_date = ?", filiere, dbtime.DateOnly(date)).
		Count(&existing).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count soutenances")
	}

	var totalTeachers int64
	if err := db.Model(&userModel.UserModel{}).
		Where("user_role IN ?", userModel.ExaminerRoles).
		Count(&totalTeachers).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count teachers")
	}

	var totalSalles int64
	if err := db.Model(&salleModel.SalleModel{}).Count(&totalSalles).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count salles")
	}

	totalSlots := int64(len(service.WorkingSlots()))
	maxTotal := totalTeachers * maxSoutenancesPerTeacher / 3 // 3 teachers per defense

	availableSlots := totalSlots - existing
	if maxTotal-existing < availableSlots {
		availableSlots = maxTotal - existing
	}

	return c.JSON(fiber.Map{
		"filiere":                     filiere,
		"date":                        dateStr,
		"students_total":              studentsTotal,
		"students_with_soutenance":    existing,
		"students_without_soutenance": studentsTotal - existing,
		"total_slots":                 totalSlots,
		"available_slots":             availableSlots,
		"total_teachers":              totalTeachers,
		"available_teachers_estimate": maxTotal / 3,
		"total_salles":                totalSalles,
		"can_schedule": studentsTotal-existing > 0 &&
			totalSlots-existing > 0 &&
			maxTotal-existing > 0,
	})
}

/* =======================================================
   GET /students-without & GET /stats
   ======================================================= */

func (ctl *SoutenanceController) StudentsWithout(c *fiber.Ctx) error {
	filiere := c.Query("filiere")
	if filiere == "" {
		return helper.Error(c, fiber.StatusBadRequest, "filiere is required")
	}
	niveau := normalizeNiveau(c.Query("niveau"))

	var date time.Time
	if ds := c.Query("date"); ds != "" {
		var err error
		date, err = time.Parse("2006-01-02", ds)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		}
	}

	entries, err := ctl.Service.StudentsWithSoutenance(filiere, niveau, date)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}

	out := make([]fiber.Map, 0, len(entries))
	for i := range entries {
		st := dto.ToStudentSummary(&entries[i].Student)
		row := fiber.Map{
			"id":               st.ID,
			"name":             st.Name,
			"cne":              st.CNE,
			"filiere":          st.Filiere,
			"niveau":           st.Niveau,
			"has_soutenance":   entries[i].Soutenance != nil,
			"soutenance_id":    nil,
			"soutenance_heure": nil,
			"soutenance_salle": nil,
			"soutenance_date":  nil,
		}
		if sout := entries[i].Soutenance; sout != nil {
			row["soutenance_id"] = sout.SoutenanceID
			row["soutenance_heure"] = sout.SoutenanceHeureDebut.HHMM()
			row["soutenance_date"] = sout.SoutenanceDate.Format("2006-01-02")
			if sout.Salle != nil {
				row["soutenance_salle"] = sout.Salle.SalleName
			}
		}
		out = append(out, row)
	}
	return c.JSON(out)
}

func (ctl *SoutenanceController) Stats(c *fiber.Ctx) error {
	filiere := c.Query("filiere")
	if filiere == "" {
		return helper.Error(c, fiber.StatusBadRequest, "filiere is required")
	}

	var date time.Time
	if ds := c.Query("date"); ds != "" {
		var err error
		date, err = time.Parse("2006-01-02", ds)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		}
	}

	stats, err := ctl.Service.Stats(filiere, normalizeNiveau(c.Query("niveau")), date)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}
	return c.JSON(stats)
}
