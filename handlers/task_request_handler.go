package handlers

import (
	"errors"

	"deltaproje.app/configs/configslog"
	"deltaproje.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskRequestHandler görev talebi uç noktaları.
type TaskRequestHandler struct {
	service services.ITaskRequestService
	forms   services.IFormService
}

// NewTaskRequestHandler yeni bir TaskRequestHandler örneği oluşturur.
func NewTaskRequestHandler(db *gorm.DB) *TaskRequestHandler {
	return &TaskRequestHandler{
		service: services.NewTaskRequestService(db),
		forms:   services.NewFormService(db),
	}
}

// CreateRequest yeni görev talebi açar.
func (h *TaskRequestHandler) CreateRequest(c *fiber.Ctx) error {
	var in services.TaskRequestInput
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, errInvalidBody)
	}

	row, err := h.service.CreateRequest(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, services.ErrRequestValidation) {
			return errorJSON(c, fiber.StatusUnprocessableEntity, err)
		}
		configslog.Log.Error("CreateRequest hatası", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

// ListRequests talepleri isteğe bağlı durum filtresiyle listeler.
func (h *TaskRequestHandler) ListRequests(c *fiber.Ctx) error {
	rows, err := h.service.ListRequests(c.UserContext(), c.Query("status"))
	if err != nil {
		configslog.Log.Error("ListRequests hatası", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"requests": rows, "count": len(rows)})
}

// GetRequest talebi kimlikle getirir.
func (h *TaskRequestHandler) GetRequest(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	row, err := h.service.GetRequest(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return errorJSON(c, fiber.StatusNotFound, err)
		}
		configslog.Log.Error("GetRequest hatası", zap.Uint("id", id), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(row)
}

// statusRequest durum güncelleme gövdesi.
type statusRequest struct {
	Status           string `json:"status"`
	AssignedToUserID *uint  `json:"assigned_to_user_id"`
	Notes            *string `json:"notes"`
}

// UpdateRequestStatus talebi yeni duruma taşır; yalnızca admin ve atayan
// rollerine açıktır.
func (h *TaskRequestHandler) UpdateRequestStatus(c *fiber.Ctx) error {
	if !actorFromCtx(c).IsPrivileged() {
		return errorJSON(c, fiber.StatusForbidden, services.ErrStepForbidden)
	}

	id, err := paramID(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, errInvalidBody)
	}

	if err := h.service.UpdateStatus(c.UserContext(), id, req.Status, req.AssignedToUserID); err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return errorJSON(c, fiber.StatusNotFound, err)
		case errors.Is(err, services.ErrRequestInvalidTransition):
			return errorJSON(c, fiber.StatusUnprocessableEntity, err)
		}
		configslog.Log.Error("UpdateRequestStatus hatası", zap.Uint("id", id), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	if req.Notes != nil {
		if err := h.service.UpdateNotes(c.UserContext(), id, *req.Notes); err != nil {
			configslog.Log.Error("UpdateNotes hatası", zap.Uint("id", id), zap.Error(err))
		}
	}
	return h.GetRequest(c)
}

// ConvertRequest talepten yeni form üretir ve talebi dönüştürüldü olarak
// damgalar; yalnızca admin ve atayan rollerine açıktır.
func (h *TaskRequestHandler) ConvertRequest(c *fiber.Ctx) error {
	if !actorFromCtx(c).IsPrivileged() {
		return errorJSON(c, fiber.StatusForbidden, services.ErrStepForbidden)
	}

	id, err := paramID(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	row, err := h.service.GetRequest(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return errorJSON(c, fiber.StatusNotFound, err)
		}
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}

	data, err := h.forms.CreateForm(c.UserContext())
	if err != nil {
		configslog.Log.Error("ConvertRequest form açma hatası", zap.Uint("id", id), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, services.ErrFormSaveFailed)
	}

	// Talep bilgileri yeni formun görev alanlarına taşınır.
	in := services.FormInput{
		Tarih:       data.Form.Tarih,
		DokNo:       data.Form.DokNo,
		RevNo:       data.Form.RevNo,
		GorevTanimi: row.RequestDescription,
		GorevYeri:   row.CustomerAddress,
		GorevFirma:  row.CustomerName,
	}
	data, err = h.forms.SaveForm(c.UserContext(), data.Form.FormNo, in, actorFromCtx(c))
	if err != nil {
		configslog.Log.Error("ConvertRequest form doldurma hatası", zap.Uint("id", id), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, services.ErrFormSaveFailed)
	}

	if err := h.service.MarkConverted(c.UserContext(), id, data.Form.FormNo); err != nil {
		switch {
		case errors.Is(err, services.ErrRequestInvalidTransition):
			return errorJSON(c, fiber.StatusUnprocessableEntity, err)
		case errors.Is(err, services.ErrRequestNotFound):
			return errorJSON(c, fiber.StatusNotFound, err)
		}
		configslog.Log.Error("ConvertRequest damgalama hatası", zap.Uint("id", id), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"request_id": id,
		"form":       data,
	})
}

// PendingCount bekleyen talep sayısını döndürür; panel rozetleri için.
func (h *TaskRequestHandler) PendingCount(c *fiber.Ctx) error {
	count, err := h.service.PendingCount(c.UserContext())
	if err != nil {
		configslog.Log.Error("PendingCount hatası", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"pending": count})
}
