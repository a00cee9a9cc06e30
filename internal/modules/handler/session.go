package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schema-studio/schema-studio/internal/modules/serializer"
	"github.com/schema-studio/schema-studio/internal/modules/service"
)

type SessionHandler struct {
	svc service.SessionService
}

func NewSessionHandler(svc service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// GetSessions godoc
//
//	@Summary		List sessions
//	@Description	List all active session ids
//	@Tags			session
//	@Produce		json
//	@Success		200	{object}	service.ListSessionsOutput
//	@Failure		500	{object}	serializer.ErrorResponse
//	@Router			/sessions [get]
func (h *SessionHandler) GetSessions(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err("error listing sessions", err))
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetSession godoc
//
//	@Summary		Get session
//	@Description	Get a session record with the stored credential stripped
//	@Tags			session
//	@Produce		json
//	@Param			session_id	path		string	true	"Session ID"
//	@Success		200			{object}	serializer.Session
//	@Failure		404			{object}	serializer.ErrorResponse
//	@Router			/session/{session_id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.svc.GetByID(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, serializer.Err("session not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.Err("error fetching session", err))
		return
	}
	c.JSON(http.StatusOK, serializer.BuildSession(session))
}

// DeleteSession godoc
//
//	@Summary		Delete session
//	@Description	Delete a session by id
//	@Tags			session
//	@Produce		json
//	@Param			session_id	path		string	true	"Session ID"
//	@Success		200			{object}	serializer.Message
//	@Failure		404			{object}	serializer.ErrorResponse
//	@Router			/session/{session_id} [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("session_id")); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, serializer.Err("session not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.Err("error deleting session", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Message{Message: "Session deleted successfully"})
}
