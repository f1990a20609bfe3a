// file: internals/features/academics/salles/route/salle_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	salleController "soutenance_backend/internals/features/academics/salles/controller"
)

func SalleRoutes(r fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := salleController.NewSalleController(db, v)

	g := r.Group("/salles")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
