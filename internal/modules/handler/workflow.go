package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schema-studio/schema-studio/internal/modules/serializer"
	"github.com/schema-studio/schema-studio/internal/modules/service"
)

type WorkflowHandler struct {
	svc service.WorkflowService
}

func NewWorkflowHandler(svc service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{svc: svc}
}

// statusFor classifies service errors: missing resources are 404, caller
// mistakes and unmet step preconditions are 400, upstream and extraction
// failures are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrTableNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDescriptionRequired),
		errors.Is(err, service.ErrCredentialRequired),
		errors.Is(err, service.ErrDesignNotGenerated),
		errors.Is(err, service.ErrNoSchemasGenerated),
		errors.Is(err, service.ErrMalformedCompletion):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type GenerateQuestionsReq struct {
	Description string `json:"description" binding:"required" example:"blog platform with users and posts"`
	APIKey      string `json:"api_key" example:"AIza..."`
	ModelName   string `json:"model_name" example:"gemini-2.0-flash"`
}

// GenerateQuestions godoc
//
//	@Summary		Generate clarifying questions
//	@Description	Start a new design session: generate 5-7 multiple-choice questions from a project description
//	@Tags			workflow
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.GenerateQuestionsReq	true	"GenerateQuestions payload"
//	@Success		200		{object}	service.GenerateQuestionsOutput
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Failure		500		{object}	serializer.ErrorResponse
//	@Router			/generate-questions [post]
func (h *WorkflowHandler) GenerateQuestions(c *gin.Context) {
	req := GenerateQuestionsReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("invalid request", err))
		return
	}

	out, err := h.svc.GenerateQuestions(c.Request.Context(), service.GenerateQuestionsInput{
		Description: req.Description,
		APIKey:      req.APIKey,
		ModelName:   req.ModelName,
	})
	if err != nil {
		c.JSON(statusFor(err), serializer.Err("error generating questions", err))
		return
	}

	c.JSON(http.StatusOK, out)
}

type GenerateDetailedPromptReq struct {
	SessionID string            `json:"session_id" binding:"required" example:"session_7f3b..."`
	Answers   map[string]string `json:"answers" binding:"required"`
}

// GenerateDetailedPrompt godoc
//
//	@Summary		Generate detailed database design
//	@Description	Turn the answered questions into a design overview plus an ordered table list
//	@Tags			workflow
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.GenerateDetailedPromptReq	true	"GenerateDetailedPrompt payload"
//	@Success		200		{object}	service.GenerateDesignOutput
//	@Failure		404		{object}	serializer.ErrorResponse
//	@Failure		500		{object}	serializer.ErrorResponse
//	@Router			/generate-detailed-prompt [post]
func (h *WorkflowHandler) GenerateDetailedPrompt(c *gin.Context) {
	req := GenerateDetailedPromptReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("invalid request", err))
		return
	}

	out, err := h.svc.GenerateDesign(c.Request.Context(), service.GenerateDesignInput{
		SessionID: req.SessionID,
		Answers:   req.Answers,
	})
	if err != nil {
		c.JSON(statusFor(err), serializer.Err("error generating detailed prompt", err))
		return
	}

	c.JSON(http.StatusOK, out)
}

type GenerateTableSchemaReq struct {
	SessionID string `json:"session_id" binding:"required" example:"session_7f3b..."`
	TableName string `json:"table_name" binding:"required" example:"users"`
}

// GenerateTableSchema godoc
//
//	@Summary		Generate SQL schema for one table
//	@Description	Generate the CREATE TABLE statement plus indexes and relationship notes for one designed table
//	@Tags			workflow
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.GenerateTableSchemaReq	true	"GenerateTableSchema payload"
//	@Success		200		{object}	service.GenerateTableSchemaOutput
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Failure		404		{object}	serializer.ErrorResponse
//	@Failure		500		{object}	serializer.ErrorResponse
//	@Router			/generate-table-schema [post]
func (h *WorkflowHandler) GenerateTableSchema(c *gin.Context) {
	req := GenerateTableSchemaReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("invalid request", err))
		return
	}

	out, err := h.svc.GenerateTableSchema(c.Request.Context(), service.GenerateTableSchemaInput{
		SessionID: req.SessionID,
		TableName: req.TableName,
	})
	if err != nil {
		c.JSON(statusFor(err), serializer.Err("error generating table schema", err))
		return
	}

	c.JSON(http.StatusOK, out)
}

type GenerateDatabaseCodeReq struct {
	SessionID           string `json:"session_id" binding:"required" example:"session_7f3b..."`
	Language            string `json:"language" binding:"required" example:"go"`
	Framework           string `json:"framework" binding:"required" example:"gorm"`
	IncludeModels       *bool  `json:"include_models" example:"true"`
	IncludeMigrations   *bool  `json:"include_migrations" example:"true"`
	IncludeRepositories *bool  `json:"include_repositories" example:"false"`
}

// GenerateDatabaseCode godoc
//
//	@Summary		Generate ORM code
//	@Description	Generate model/migration/repository code for the chosen language and framework from the generated schemas
//	@Tags			workflow
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.GenerateDatabaseCodeReq	true	"GenerateDatabaseCode payload"
//	@Success		200		{object}	service.GenerateDatabaseCodeOutput
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Failure		404		{object}	serializer.ErrorResponse
//	@Failure		500		{object}	serializer.ErrorResponse
//	@Router			/generate-database-code [post]
func (h *WorkflowHandler) GenerateDatabaseCode(c *gin.Context) {
	req := GenerateDatabaseCodeReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("invalid request", err))
		return
	}

	// models and migrations default to on, repositories to off
	in := service.GenerateDatabaseCodeInput{
		SessionID:           req.SessionID,
		Language:            req.Language,
		Framework:           req.Framework,
		IncludeModels:       true,
		IncludeMigrations:   true,
		IncludeRepositories: false,
	}
	if req.IncludeModels != nil {
		in.IncludeModels = *req.IncludeModels
	}
	if req.IncludeMigrations != nil {
		in.IncludeMigrations = *req.IncludeMigrations
	}
	if req.IncludeRepositories != nil {
		in.IncludeRepositories = *req.IncludeRepositories
	}

	out, err := h.svc.GenerateDatabaseCode(c.Request.Context(), in)
	if err != nil {
		c.JSON(statusFor(err), serializer.Err("error generating database code", err))
		return
	}

	c.JSON(http.StatusOK, out)
}
