package handlers

import (
	"errors"

	"deltaproje.app/configs/configslog"
	"deltaproje.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FormHandler form yaşam döngüsü uç noktaları.
type FormHandler struct {
	service services.IFormService
	locks   *services.LockSet
}

// NewFormHandler yeni bir FormHandler örneği oluşturur.
func NewFormHandler(db *gorm.DB, locks *services.LockSet) *FormHandler {
	return &FormHandler{
		service: services.NewFormService(db),
		locks:   locks,
	}
}

// CreateForm yeni form numarası üretip boş formu açar.
func (h *FormHandler) CreateForm(c *fiber.Ctx) error {
	data, err := h.service.CreateForm(c.UserContext())
	if err != nil {
		configslog.Log.Error("CreateForm hatası", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, services.ErrFormSaveFailed)
	}
	return c.Status(fiber.StatusCreated).JSON(data)
}

// GetForm formu numarasıyla getirir; durum her okuyuşta yeniden hesaplanır.
func (h *FormHandler) GetForm(c *fiber.Ctx) error {
	formNo := c.Params("formNo")
	data, err := h.service.LoadForm(c.UserContext(), formNo)
	if err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			return errorJSON(c, fiber.StatusNotFound, err)
		}
		configslog.Log.Error("GetForm hatası", zap.String("form_no", formNo), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{
		"data":   data,
		"steps":  services.FormSteps,
		"locked": h.locks.IsLocked(formNo),
	})
}

// SaveStep sihirbazın tek adımını kaydeder. Kilitli form yeniden
// açılmadan adım kabul etmez.
func (h *FormHandler) SaveStep(c *fiber.Ctx) error {
	formNo := c.Params("formNo")
	if h.locks.IsLocked(formNo) {
		return errorJSON(c, fiber.StatusConflict, errFormLocked)
	}

	step, err := c.ParamsInt("step")
	if err != nil || step < 0 {
		return errorJSON(c, fiber.StatusBadRequest, errInvalidStep)
	}

	var in services.FormInput
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, errInvalidBody)
	}

	data, err := h.service.SaveStep(c.UserContext(), formNo, step, in, actorFromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFormNotFound):
			return errorJSON(c, fiber.StatusNotFound, err)
		case errors.Is(err, services.ErrStepForbidden):
			return errorJSON(c, fiber.StatusForbidden, err)
		}
		configslog.Log.Error("SaveStep hatası", zap.String("form_no", formNo), zap.Int("step", step), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}

	// Tamamlanan form kapanışta kilitlenir; yarım kalan açık kalır.
	if data.Status.IsComplete() {
		h.locks.Lock(formNo)
	}
	return c.JSON(data)
}

// SaveForm formun tamamını tek seferde kaydeder.
func (h *FormHandler) SaveForm(c *fiber.Ctx) error {
	formNo := c.Params("formNo")
	if h.locks.IsLocked(formNo) {
		return errorJSON(c, fiber.StatusConflict, errFormLocked)
	}

	var in services.FormInput
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, errInvalidBody)
	}

	data, err := h.service.SaveForm(c.UserContext(), formNo, in, actorFromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFormNotFound):
			return errorJSON(c, fiber.StatusNotFound, err)
		case errors.Is(err, services.ErrStepForbidden):
			return errorJSON(c, fiber.StatusForbidden, err)
		}
		configslog.Log.Error("SaveForm hatası", zap.String("form_no", formNo), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}

	if data.Status.IsComplete() {
		h.locks.Lock(formNo)
	}
	return c.JSON(data)
}

// UnlockForm tamamlanmış formu yeniden düzenlemeye açar; yalnızca admin
// ve atayan rolleri kullanabilir.
func (h *FormHandler) UnlockForm(c *fiber.Ctx) error {
	actor := actorFromCtx(c)
	if !actor.IsPrivileged() {
		return errorJSON(c, fiber.StatusForbidden, services.ErrStepForbidden)
	}
	h.locks.Unlock(c.Params("formNo"))
	return c.JSON(fiber.Map{"locked": false})
}

// assignRequest atama isteği gövdesi; assigned_to null gönderilirse atama
// kaldırılır.
type assignRequest struct {
	AssignedTo *uint `json:"assigned_to"`
}

// AssignForm formu bir çalışana atar veya atamayı kaldırır.
func (h *FormHandler) AssignForm(c *fiber.Ctx) error {
	actor := actorFromCtx(c)
	if !actor.IsPrivileged() {
		return errorJSON(c, fiber.StatusForbidden, services.ErrStepForbidden)
	}

	formNo := c.Params("formNo")
	var req assignRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, errInvalidBody)
	}

	var assignedBy *uint
	if req.AssignedTo != nil && actor.UserID != 0 {
		id := actor.UserID
		assignedBy = &id
	}

	assignedAt, err := h.service.AssignForm(c.UserContext(), formNo, req.AssignedTo, assignedBy)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFormNotFound):
			return errorJSON(c, fiber.StatusNotFound, err)
		case errors.Is(err, services.ErrAssigneeNotFound), errors.Is(err, services.ErrAssigneeNotAllowed):
			return errorJSON(c, fiber.StatusUnprocessableEntity, err)
		}
		configslog.Log.Error("AssignForm hatası", zap.String("form_no", formNo), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{
		"form_no":     formNo,
		"assigned_to": req.AssignedTo,
		"assigned_at": assignedAt,
	})
}

// ListFormNumbers kayıtlı form numaralarını sayısal azalan sırada döndürür.
func (h *FormHandler) ListFormNumbers(c *fiber.Ctx) error {
	numbers, err := h.service.ListFormNumbers(c.UserContext())
	if err != nil {
		configslog.Log.Error("ListFormNumbers hatası", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"form_nos": numbers})
}
