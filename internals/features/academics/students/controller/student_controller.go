// file: internals/features/academics/students/controller/student_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"soutenance_backend/internals/features/academics/students/dto"
	"soutenance_backend/internals/features/academics/students/model"
	userModel "soutenance_backend/internals/features/users/user/model"
	helper "soutenance_backend/internals/helpers"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB, v *validator.Validate) *StudentController {
	return &StudentController{DB: db, Validate: v}
}

func (ctl *StudentController) List(c *fiber.Ctx) error {
	db := ctl.DB.Preload("User").Model(&model.StudentModel{})

	if filiere := c.Query("filiere"); filiere != "" {
		db = db.Where("student_filiere = ?", filiere)
	}
	if niveau := c.Query("niveau"); niveau != "" && niveau != "Tous les niveaux" {
		db = db.Where("student_niveau = ?", niveau)
	}

	var rows []model.StudentModel
	if err := db.Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}

	out := make([]dto.StudentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToStudentResponse(&rows[i]))
	}
	return c.JSON(out)
}

func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.StudentModel
	if err := ctl.DB.Preload("User").Where("student_user_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}
	return c.JSON(dto.ToStudentResponse(&m))
}

// Create writes the user account (role student) and the academic profile
// in one transaction.
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	student := model.StudentModel{
		StudentCIN:     req.CIN,
		StudentCNE:     req.CNE,
		StudentTel:     req.Tel,
		StudentFiliere: req.Filiere,
		StudentNiveau:  req.Niveau,
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		user := userModel.UserModel{
			UserName:         req.Name,
			UserPrenom:       req.Prenom,
			UserEmail:        req.Email,
			UserPasswordHash: string(hash),
			UserRole:         userModel.RoleStudent,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		student.StudentUserID = user.UserID
		student.User = &user
		return tx.Create(&student).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Email, CIN or CNE already in use")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create student")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Student created", dto.ToStudentResponse(&student))
}

func (ctl *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m model.StudentModel
	if err := ctl.DB.Preload("User").Where("student_user_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		userUpdates := map[string]interface{}{}
		if req.Name != nil {
			userUpdates["user_name"] = *req.Name
		}
		if req.Prenom != nil {
			userUpdates["user_prenom"] = *req.Prenom
		}
		if len(userUpdates) > 0 {
			if err := tx.Model(&userModel.UserModel{}).
				Where("user_id = ?", id).
				Updates(userUpdates).Error; err != nil {
				return err
			}
		}

		profileUpdates := map[string]interface{}{}
		if req.Tel != nil {
			profileUpdates["student_tel"] = *req.Tel
		}
		if req.Filiere != nil {
			profileUpdates["student_filiere"] = *req.Filiere
		}
		if req.Niveau != nil {
			profileUpdates["student_niveau"] = *req.Niveau
		}
		if len(profileUpdates) > 0 {
			if err := tx.Model(&model.StudentModel{}).
				Where("student_user_id = ?", id).
				Updates(profileUpdates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update student")
	}

	if err := ctl.DB.Preload("User").Where("student_user_id = ?", id).First(&m).Error; err == nil {
		return helper.Success(c, "Student updated", dto.ToStudentResponse(&m))
	}
	return helper.Success(c, "Student updated", fiber.Map{"id": id})
}

// Delete removes the profile and the user account; soutenances cascade
// through the FK.
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid id")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("student_user_id = ?", id).Delete(&model.StudentModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("user_id = ?", id).Delete(&userModel.UserModel{}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete student")
	}
	return helper.Success(c, "Student deleted", fiber.Map{"id": id})
}

/* =======================================================
   HELPERS
   ======================================================= */

// Postgres unique violation without importing pgconn; substring match
// keeps it portable across drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "unique failed")
}
