package handlers

import (
	"errors"

	"deltaproje.app/configs/configslog"
	"deltaproje.app/models"
	"deltaproje.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserHandler kullanıcı ve giriş uç noktaları.
type UserHandler struct {
	service services.IUserService
}

// NewUserHandler yeni bir UserHandler örneği oluşturur.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{service: services.NewUserService(db)}
}

// userView parola karmasını dışarı sızdırmayan kullanıcı izdüşümü.
type userView struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

func toUserView(u *models.User) userView {
	return userView{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

// loginRequest giriş gövdesi; kullanıcı listeden seçilir, parola yalnızca
// gerektiren roller için doldurulur.
type loginRequest struct {
	UserID   uint   `json:"user_id"`
	Password string `json:"password"`
}

// Login kimliği doğrular ve kullanıcı bilgisini döndürür.
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, errInvalidBody)
	}

	user, err := h.service.Authenticate(c.UserContext(), req.UserID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return errorJSON(c, fiber.StatusNotFound, err)
		case errors.Is(err, services.ErrUserWrongPassword),
			errors.Is(err, services.ErrUserInactive),
			errors.Is(err, services.ErrUserPasswordNeeded):
			return errorJSON(c, fiber.StatusUnauthorized, err)
		}
		configslog.Log.Error("Login hatası", zap.Uint("user_id", req.UserID), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(toUserView(user))
}

// CreateUser yeni kullanıcı açar; yalnızca admin kullanabilir.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	if actorFromCtx(c).Role != models.RoleAdmin {
		return errorJSON(c, fiber.StatusForbidden, services.ErrStepForbidden)
	}

	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, errInvalidBody)
	}

	user, err := h.service.CreateUser(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserValidation), errors.Is(err, services.ErrUserWeakPassword):
			return errorJSON(c, fiber.StatusUnprocessableEntity, err)
		}
		configslog.Log.Error("CreateUser hatası", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toUserView(user))
}

// ListUsers kullanıcıları listeler. role sorgusu verilirse o roldeki
// aktifler, include_inactive=true verilirse pasifler de döner.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	var (
		users []models.User
		err   error
	)
	if role := c.Query("role"); role != "" {
		users, err = h.service.ListUsersByRole(c.UserContext(), role)
	} else {
		users, err = h.service.ListUsers(c.UserContext(), c.QueryBool("include_inactive"))
	}
	if err != nil {
		if errors.Is(err, services.ErrUserValidation) {
			return errorJSON(c, fiber.StatusBadRequest, err)
		}
		configslog.Log.Error("ListUsers hatası", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}

	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, toUserView(&users[i]))
	}
	return c.JSON(fiber.Map{"users": views, "count": len(views)})
}

// GetUser kullanıcıyı kimlikle getirir.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	user, err := h.service.GetUser(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return errorJSON(c, fiber.StatusNotFound, err)
		}
		configslog.Log.Error("GetUser hatası", zap.Uint("id", id), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(toUserView(user))
}

// passwordRequest parola güncelleme gövdesi.
type passwordRequest struct {
	Password string `json:"password"`
}

// UpdatePassword kullanıcının parolasını değiştirir; admin herkesin,
// diğer roller yalnızca kendi parolasını değiştirebilir.
func (h *UserHandler) UpdatePassword(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	actor := actorFromCtx(c)
	if actor.Role != models.RoleAdmin && actor.UserID != id {
		return errorJSON(c, fiber.StatusForbidden, services.ErrStepForbidden)
	}

	var req passwordRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, errInvalidBody)
	}

	if err := h.service.UpdatePassword(c.UserContext(), id, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return errorJSON(c, fiber.StatusNotFound, err)
		case errors.Is(err, services.ErrUserWeakPassword):
			return errorJSON(c, fiber.StatusUnprocessableEntity, err)
		}
		configslog.Log.Error("UpdatePassword hatası", zap.Uint("id", id), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"updated": true})
}

// DeleteUser kullanıcıyı pasifleştirir; yalnızca admin kullanabilir.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	if actorFromCtx(c).Role != models.RoleAdmin {
		return errorJSON(c, fiber.StatusForbidden, services.ErrStepForbidden)
	}

	id, err := paramID(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	if err := h.service.DeleteUser(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return errorJSON(c, fiber.StatusNotFound, err)
		}
		configslog.Log.Error("DeleteUser hatası", zap.Uint("id", id), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
