package handlers

import (
	"errors"

	"deltaproje.app/services"

	"github.com/gofiber/fiber/v2"
)

// Gövde ve yol ayrıştırma hataları; servis hatalarından ayrı tutulur.
var (
	errInvalidBody = errors.New("Geçersiz istek gövdesi")
	errInvalidStep = errors.New("Geçersiz adım numarası")
	errInvalidID   = errors.New("Geçersiz kayıt kimliği")
	errFormLocked  = errors.New("Form kilitli; önce kilidi açın")
)

// actorFromCtx middleware tarafından locals'a konan kimliği okur. Kimlik
// taşınmamışsa alanlar sıfır değerde kalır ve yetki kontrolleri reddeder.
func actorFromCtx(c *fiber.Ctx) services.Actor {
	actor := services.Actor{}
	if id, ok := c.Locals("userID").(uint); ok {
		actor.UserID = id
	}
	if role, ok := c.Locals("userRole").(string); ok {
		actor.Role = role
	}
	if name, ok := c.Locals("userName").(string); ok {
		actor.FullName = name
	}
	return actor
}

// errorJSON hata gövdesini tek biçimde yazar.
func errorJSON(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// paramID yol parametresinden pozitif kayıt kimliği okur.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}
