// file: internals/features/soutenances/juries/controller/jury_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"soutenance_backend/internals/features/soutenances/juries/dto"
	"soutenance_backend/internals/features/soutenances/soutenances/model"
	"soutenance_backend/internals/features/soutenances/soutenances/service"
	userModel "soutenance_backend/internals/features/users/user/model"
	helper "soutenance_backend/internals/helpers"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

// JuryController is the manual panel-editing surface. The uniqueness
// rules (one seat per teacher, one president per soutenance) live here,
// not in the scheduling engine, which always writes fixed role labels.
type JuryController struct {
	DB       *gorm.DB
	Service  *service.SoutenanceService
	Validate *validator.Validate
}

func NewJuryController(db *gorm.DB, svc *service.SoutenanceService, v *validator.Validate) *JuryController {
	return &JuryController{DB: db, Service: svc, Validate: v}
}

/* =======================================================
   GET /soutenance/:id - panel of one soutenance
   ======================================================= */

func (ctl *JuryController) ListBySoutenance(c *fiber.Ctx) error {
	soutID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid soutenance id")
	}

	var juries []model.JuryModel
	if err := ctl.DB.Preload("Teacher").
		Where("jury_soutenance_id = ?", soutID).
		Find(&juries).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch jury members")
	}

	out := make([]dto.JuryMemberResponse, 0, len(juries))
	for i := range juries {
		out = append(out, dto.ToJuryMemberResponse(&juries[i]))
	}
	return c.JSON(out)
}

/* =======================================================
   GET /teachers/available - all examiner-eligible staff
   ======================================================= */

func (ctl *JuryController) AvailableTeachers(c *fiber.Ctx) error {
	var teachers []userModel.UserModel
	if err := ctl.DB.Where("user_role IN ?", userModel.ExaminerRoles).Find(&teachers).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch teachers")
	}

	out := make([]fiber.Map, 0, len(teachers))
	for i := range teachers {
		out = append(out, fiber.Map{
			"id":    teachers[i].UserID,
			"name":  teachers[i].FullName(),
			"email": teachers[i].UserEmail,
			"role":  teachers[i].UserRole,
		})
	}
	return c.JSON(out)
}

/* =======================================================
   POST / - add a member
   ======================================================= */

func (ctl *JuryController) Add(c *fiber.Ctx) error {
	var req dto.AddJuryMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var sout model.SoutenanceModel
	if err := ctl.DB.Where("soutenance_id = ?", req.SoutenanceID).First(&sout).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Soutenance not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch soutenance")
	}

	var teacher userModel.UserModel
	if err := ctl.DB.Where("user_id = ? AND user_role IN ?", req.TeacherID, userModel.ExaminerRoles).
		First(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusBadRequest, "Teacher not found or not eligible")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch teacher")
	}

	// one seat per teacher per soutenance
	var dup int64
	if err := ctl.DB.Model(&model.JuryModel{}).
		Where("jury_soutenance_id = ? AND jury_teacher_id = ?", req.SoutenanceID, req.TeacherID).
		Count(&dup).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to check jury")
	}
	if dup > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "This teacher already sits on the jury")
	}

	// at most one president per soutenance
	if model.JuryRole(req.Role) == model.JuryPresident {
		var presidents int64
		if err := ctl.DB.Model(&model.JuryModel{}).
			Where("jury_soutenance_id = ? AND jury_role = ?", req.SoutenanceID, model.JuryPresident).
			Count(&presidents).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to check president")
		}
		if presidents > 0 {
			return helper.Error(c, fiber.StatusBadRequest, "A president is already assigned to this soutenance")
		}
	}

	jury := model.JuryModel{
		JurySoutenanceID: req.SoutenanceID,
		JuryTeacherID:    req.TeacherID,
		JuryRole:         model.JuryRole(req.Role),
	}
	if err := ctl.DB.Create(&jury).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to add jury member")
	}

	ctl.reconcile()
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Jury member added", dto.ToJuryMemberResponse(&jury))
}

/* =======================================================
   PUT /:id - change role
   ======================================================= */

func (ctl *JuryController) UpdateRole(c *fiber.Ctx) error {
	juryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid jury id")
	}

	var req dto.UpdateJuryRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var jury model.JuryModel
	if err := ctl.DB.Where("jury_id = ?", juryID).First(&jury).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Jury member not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch jury member")
	}

	newRole := model.JuryRole(req.Role)
	if newRole == model.JuryPresident && jury.JuryRole != model.JuryPresident {
		var presidents int64
		if err := ctl.DB.Model(&model.JuryModel{}).
			Where("jury_soutenance_id = ? AND jury_role = ? AND jury_id <> ?",
				jury.JurySoutenanceID, model.JuryPresident, juryID).
			Count(&presidents).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to check president")
		}
		if presidents > 0 {
			return helper.Error(c, fiber.StatusBadRequest, "A president is already assigned to this soutenance")
		}
	}

	if err := ctl.DB.Model(&jury).Update("jury_role", newRole).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update jury role")
	}

	jury.JuryRole = newRole
	return helper.Success(c, "Jury role updated", dto.ToJuryMemberResponse(&jury))
}

/* =======================================================
   DELETE /:id - remove a member
   ======================================================= */

func (ctl *JuryController) Remove(c *fiber.Ctx) error {
	juryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid jury id")
	}

	tx := ctl.DB.Where("jury_id = ?", juryID).Delete(&model.JuryModel{})
	if tx.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to remove jury member")
	}
	if tx.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Jury member not found")
	}

	ctl.reconcile()
	return helper.Success(c, "Jury member removed", fiber.Map{"id": juryID})
}

// reconcile refreshes the derived teacher/jury labels after a manual
// panel mutation; a failure is logged, never surfaced to the caller.
func (ctl *JuryController) reconcile() {
	if _, err := ctl.Service.ReconcileTeacherRoles(); err != nil {
		log.Printf("[WARN] role reconciliation after jury mutation failed: %v", err)
	}
}
