// file: internals/features/academics/students/route/student_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"soutenance_backend/internals/features/academics/students/controller"
)

func StudentRoutes(router fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := controller.NewStudentController(db, v)

	students := router.Group("/students")
	students.Get("/", ctl.List)
	students.Get("/:id", ctl.GetByID)
	students.Post("/", ctl.Create)
	students.Put("/:id", ctl.Update)
	students.Delete("/:id", ctl.Delete)
}
