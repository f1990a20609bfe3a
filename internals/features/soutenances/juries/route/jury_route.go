// file: internals/features/soutenances/juries/route/jury_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	juryController "soutenance_backend/internals/features/soutenances/juries/controller"
	"soutenance_backend/internals/features/soutenances/soutenances/service"
)

// JuryRoutes mounts the manual panel-editing surface.
func JuryRoutes(r fiber.Router, db *gorm.DB, v *validator.Validate) {
	svc := service.NewSoutenanceService(db)
	ctl := juryController.NewJuryController(db, svc, v)

	g := r.Group("/jurys")
	g.Get("/soutenance/:id", ctl.ListBySoutenance)
	g.Get("/teachers/available", ctl.AvailableTeachers)
	g.Post("/", ctl.Add)
	g.Put("/:id", ctl.UpdateRole)
	g.Delete("/:id", ctl.Remove)
}
