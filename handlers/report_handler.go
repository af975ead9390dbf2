package handlers

import (
	"deltaproje.app/configs/configslog"
	"deltaproje.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportHandler yönetim raporu uç noktası.
type ReportHandler struct {
	service services.IReportService
}

// NewReportHandler yeni bir ReportHandler örneği oluşturur.
func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{service: services.NewReportService(db)}
}

// GetSummary tarih aralığına göre toplu rapor döndürür; rapor yalnızca
// admin ve atayan rollerine açıktır.
func (h *ReportHandler) GetSummary(c *fiber.Ctx) error {
	if !actorFromCtx(c).IsPrivileged() {
		return errorJSON(c, fiber.StatusForbidden, services.ErrStepForbidden)
	}

	summary, err := h.service.Summarize(c.UserContext(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		configslog.Log.Error("GetSummary hatası", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(summary)
}
