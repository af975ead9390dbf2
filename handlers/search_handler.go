package handlers

import (
	"deltaproje.app/configs/configslog"
	"deltaproje.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SearchHandler form arama uç noktası.
type SearchHandler struct {
	service services.ISearchService
}

// NewSearchHandler yeni bir SearchHandler örneği oluşturur.
func NewSearchHandler(db *gorm.DB) *SearchHandler {
	return &SearchHandler{service: services.NewSearchService(db)}
}

// SearchForms sorgu parametrelerindeki filtrelerle özet listesi döndürür.
// Tüm filtreler isteğe bağlıdır; boş sorgu tüm formları listeler.
func (h *SearchHandler) SearchForms(c *fiber.Ctx) error {
	summaries, err := h.service.SearchForms(
		c.UserContext(),
		c.Query("person"),
		c.Query("location"),
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		configslog.Log.Error("SearchForms hatası", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{
		"results": summaries,
		"count":   len(summaries),
	})
}
