// file: internals/features/soutenances/soutenances/controller/soutenance_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"soutenance_backend/internals/features/soutenances/soutenances/dto"
	"soutenance_backend/internals/features/soutenances/soutenances/model"
	"soutenance_backend/internals/features/soutenances/soutenances/service"
	helper "soutenance_backend/internals/helpers"
	"soutenance_backend/internals/helpers/dbtime"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

type SoutenanceController struct {
	Service  *service.SoutenanceService
	Validate *validator.Validate
}

func NewSoutenanceController(svc *service.SoutenanceService, v *validator.Validate) *SoutenanceController {
	return &SoutenanceController{Service: svc, Validate: v}
}

/* =======================================================
   POST /schedule
   ======================================================= */

func (ctl *SoutenanceController) Schedule(c *fiber.Ctx) error {
	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
	}

	params := service.ScheduleParams{
		Filiere:      req.Filiere,
		Niveau:       req.Niveau,
		Date:         date,
		DureeMinutes: req.DureeMinutes,
	}
	if req.StartTime != "" {
		params.Start, _ = dbtime.Parse(req.StartTime)
	}
	if req.EndTime != "" {
		params.End, _ = dbtime.Parse(req.EndTime)
	}

	res, err := ctl.Service.ScheduleFiliere(params)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoStudents),
			errors.Is(err, service.ErrNoSalles),
			errors.Is(err, service.ErrNotEnoughTeachers):
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Printf("[ERROR] schedule %s/%s: %v", req.Filiere, req.Date, err)
			return helper.Error(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	out := dto.ScheduleResponse{
		Status:      "success",
		Message:     res.Message,
		Soutenances: dto.ToSoutenanceResponses(res.Created),
		Count:       len(res.Created),
		Unscheduled: make([]dto.StudentSummary, 0, len(res.Unscheduled)),
		Skipped:     res.AlreadyScheduled,
	}
	for i := range res.Unscheduled {
		if s := dto.ToStudentSummary(&res.Unscheduled[i]); s != nil {
			out.Unscheduled = append(out.Unscheduled, *s)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

/* =======================================================
   GET / (by date) & GET /all
   ======================================================= */

func (ctl *SoutenanceController) List(c *fiber.Ctx) error {
	// past planned soutenances become done before anyone reads them
	if _, err := ctl.Service.SweepStatuses(); err != nil {
		log.Printf("[WARN] status sweep failed: %v", err)
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		return c.JSON([]dto.SoutenanceResponse{})
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
	}

	rows, err := ctl.Service.ListByDate(date, c.Query("filiere"), normalizeNiveau(c.Query("niveau")))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch soutenances")
	}
	return c.JSON(dto.ToSoutenanceResponses(rows))
}

func (ctl *SoutenanceController) ListAll(c *fiber.Ctx) error {
	if _, err := ctl.Service.SweepStatuses(); err != nil {
		log.Printf("[WARN] status sweep failed: %v", err)
	}
	p := helper.ParsePagination(c, "date", "desc", helper.DefaultPaginationOpts)
	rows, total, err := ctl.Service.ListAll(p)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch soutenances")
	}
	return c.JSON(fiber.Map{
		"data": dto.ToSoutenanceResponses(rows),
		"meta": helper.BuildPaginationMeta(total, p),
	})
}

/* =======================================================
   GET /slots
   ======================================================= */

func (ctl *SoutenanceController) Slots(c *fiber.Ctx) error {
	return c.JSON(service.WorkingSlots())
}

/* =======================================================
   PUT /:id/status & DELETE /:id
   ======================================================= */

func (ctl *SoutenanceController) UpdateStatut(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateStatutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	old, err := ctl.Service.UpdateStatut(id, model.SoutenanceStatut(req.Statut))
	if err != nil {
		if errors.Is(err, service.ErrSoutenanceNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Soutenance not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update status")
	}

	log.Printf("[INFO] soutenance %s status: %s -> %s", id, old, req.Statut)
	return helper.Success(c, "Status updated", fiber.Map{
		"id":     id,
		"statut": req.Statut,
	})
}

func (ctl *SoutenanceController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid id")
	}

	deletedJuries, err := ctl.Service.Delete(id)
	if err != nil {
		if errors.Is(err, service.ErrSoutenanceNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Soutenance not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete soutenance")
	}

	log.Printf("[INFO] soutenance %s deleted (%d jury rows)", id, deletedJuries)
	return helper.Success(c, "Soutenance deleted", fiber.Map{
		"id":             id,
		"deleted_juries": deletedJuries,
	})
}

/* =======================================================
   HELPERS
   ======================================================= */

// the front-end sends this sentinel for "no niveau filter"
func normalizeNiveau(niveau string) string {
	if niveau == "Tous les niveaux" {
		return ""
	}
	return niveau
}
