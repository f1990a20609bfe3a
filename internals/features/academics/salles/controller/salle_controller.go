// file: internals/features/academics/salles/controller/salle_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"soutenance_backend/internals/features/academics/salles/dto"
	"soutenance_backend/internals/features/academics/salles/model"
	helper "soutenance_backend/internals/helpers"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

type SalleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewSalleController(db *gorm.DB, v *validator.Validate) *SalleController {
	return &SalleController{DB: db, Validate: v}
}

func (ctl *SalleController) List(c *fiber.Ctx) error {
	db := ctl.DB.Model(&model.SalleModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		db = db.Where("LOWER(salle_name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var rows []model.SalleModel
	if err := db.Order("salle_name ASC").Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch salles")
	}

	out := make([]dto.SalleResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToSalleResponse(m))
	}
	return c.JSON(out)
}

func (ctl *SalleController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.SalleModel
	if err := ctl.DB.Where("salle_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Salle not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch salle")
	}
	return c.JSON(dto.ToSalleResponse(m))
}

func (ctl *SalleController) Create(c *fiber.Ctx) error {
	var req dto.CreateSalleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := model.SalleModel{
		SalleName:     req.SalleName,
		SalleFeatures: req.SalleFeatures,
	}
	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create salle")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Salle created", dto.ToSalleResponse(m))
}

func (ctl *SalleController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateSalleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m model.SalleModel
	if err := ctl.DB.Where("salle_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Salle not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch salle")
	}

	updates := map[string]interface{}{}
	if req.SalleName != nil {
		updates["salle_name"] = *req.SalleName
	}
	if req.SalleFeatures != nil {
		updates["salle_features"] = *req.SalleFeatures
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "No fields to update")
	}
	updates["salle_updated_at"] = time.Now()

	if err := ctl.DB.Model(&m).Clauses(clause.Returning{}).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update salle")
	}
	return helper.Success(c, "Salle updated", dto.ToSalleResponse(m))
}

func (ctl *SalleController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid id")
	}

	tx := ctl.DB.Where("salle_id = ?", id).Delete(&model.SalleModel{})
	if tx.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete salle")
	}
	if tx.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Salle not found or already deleted")
	}
	return helper.Success(c, "Salle deleted", fiber.Map{"deleted": true})
}
