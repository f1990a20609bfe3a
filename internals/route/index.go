// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	salleRoute "soutenance_backend/internals/features/academics/salles/route"
	studentRoute "soutenance_backend/internals/features/academics/students/route"
	juryRoute "soutenance_backend/internals/features/soutenances/juries/route"
	soutenanceRoute "soutenance_backend/internals/features/soutenances/soutenances/route"
	authRoute "soutenance_backend/internals/features/users/auth/route"
	userModel "soutenance_backend/internals/features/users/user/model"
	authMw "soutenance_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	validate := validator.New()

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db, validate)

	// ===================== GROUPS =====================

	// any authenticated user
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api", authMw.AuthMiddleware(db))

	// staff who drive the planning
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMw.AuthMiddleware(db),
		authMw.OnlyRoles("Only staff can manage planning",
			string(userModel.RoleAdmin), string(userModel.RoleTeacher), string(userModel.RoleJury)),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Soutenance routes...")
	soutenanceRoute.SoutenanceRoutes(private, db, validate)

	log.Println("[INFO] Mounting Jury routes...")
	juryRoute.JuryRoutes(admin, db, validate)

	log.Println("[INFO] Mounting Salle routes...")
	salleRoute.SalleRoutes(admin, db, validate)

	log.Println("[INFO] Mounting Student routes...")
	studentRoute.StudentRoutes(admin, db, validate)
}
