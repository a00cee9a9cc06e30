package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schema-studio/schema-studio/internal/modules/model"
)

type LanguageHandler struct{}

func NewLanguageHandler() *LanguageHandler {
	return &LanguageHandler{}
}

// GetSupportedLanguages godoc
//
//	@Summary		List supported languages
//	@Description	Languages and ORM frameworks available for database code generation
//	@Tags			language
//	@Produce		json
//	@Success		200	{object}	map[string]model.Language
//	@Router			/supported-languages [get]
func (h *LanguageHandler) GetSupportedLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, model.SupportedLanguages)
}
