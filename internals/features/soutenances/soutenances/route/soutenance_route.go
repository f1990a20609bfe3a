// file: internals/features/soutenances/soutenances/route/soutenance_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	soutenanceController "soutenance_backend/internals/features/soutenances/soutenances/controller"
	"soutenance_backend/internals/features/soutenances/soutenances/service"
)

// SoutenanceRoutes mounts the scheduling + consultation surface.
func SoutenanceRoutes(r fiber.Router, db *gorm.DB, v *validator.Validate) {
	svc := service.NewSoutenanceService(db)
	ctl := soutenanceController.NewSoutenanceController(svc, v)

	g := r.Group("/soutenances")
	g.Get("/", ctl.List)
	g.Get("/all", ctl.ListAll)
	g.Get("/slots", ctl.Slots)
	g.Get("/availability", ctl.DayAvailability)
	g.Get("/check-slot-availability", ctl.CheckSlot)
	g.Get("/students-without", ctl.StudentsWithout)
	g.Get("/stats", ctl.Stats)
	g.Post("/schedule", ctl.Schedule)
	g.Put("/:id/status", ctl.UpdateStatut)
	g.Delete("/:id", ctl.Delete)
}
