package routes

import (
	"strconv"

	"deltaproje.app/handlers"
	"deltaproje.app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama
	app.Use(identityLocals())        // Başlıklardan kimlik çözümü

	locks := services.NewLockSet()
	registerFormRoutes(app, db, locks)
	registerSearchRoutes(app, db)
	registerReportRoutes(app, db)
	registerTaskRequestRoutes(app, db)
	registerUserRoutes(app, db)

	app.Use(notFoundHandler)
}

// identityLocals istemcinin taşıdığı kimlik başlıklarını locals'a koyar.
// Kimlik doğrulamanın kendisi /users/login ucundadır; sonraki istekler
// çözülen kimliği bu başlıklarla taşır.
func identityLocals() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := c.Get("X-User-ID"); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
				c.Locals("userID", uint(id))
			}
		}
		if role := c.Get("X-User-Role"); role != "" {
			c.Locals("userRole", role)
		}
		if name := c.Get("X-User-Name"); name != "" {
			c.Locals("userName", name)
		}
		return c.Next()
	}
}

func registerFormRoutes(app *fiber.App, db *gorm.DB, locks *services.LockSet) {
	h := handlers.NewFormHandler(db, locks)
	forms := app.Group("/forms")
	forms.Get("/", h.ListFormNumbers)
	forms.Post("/", h.CreateForm)
	forms.Get("/:formNo", h.GetForm)
	forms.Post("/:formNo", h.SaveForm)
	forms.Post("/:formNo/steps/:step", h.SaveStep)
	forms.Post("/:formNo/assign", h.AssignForm)
	forms.Post("/:formNo/unlock", h.UnlockForm)
}

func registerSearchRoutes(app *fiber.App, db *gorm.DB) {
	h := handlers.NewSearchHandler(db)
	app.Get("/search", h.SearchForms)
}

func registerReportRoutes(app *fiber.App, db *gorm.DB) {
	h := handlers.NewReportHandler(db)
	app.Get("/report", h.GetSummary)
}

func registerTaskRequestRoutes(app *fiber.App, db *gorm.DB) {
	h := handlers.NewTaskRequestHandler(db)
	requests := app.Group("/task-requests")
	requests.Get("/", h.ListRequests)
	requests.Post("/", h.CreateRequest)
	requests.Get("/pending-count", h.PendingCount)
	requests.Get("/:id", h.GetRequest)
	requests.Patch("/:id/status", h.UpdateRequestStatus)
	requests.Post("/:id/convert", h.ConvertRequest)
}

func registerUserRoutes(app *fiber.App, db *gorm.DB) {
	h := handlers.NewUserHandler(db)
	users := app.Group("/users")
	users.Post("/login", h.Login)
	users.Get("/", h.ListUsers)
	users.Post("/", h.CreateUser)
	users.Get("/:id", h.GetUser)
	users.Patch("/:id/password", h.UpdatePassword)
	users.Delete("/:id", h.DeleteUser)
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
}
