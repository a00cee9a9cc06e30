package serializer

import (
	"fmt"
	"time"

	"github.com/schema-studio/schema-studio/internal/modules/model"
	"go.uber.org/zap"
)

var log *zap.Logger = zap.NewNop()

// SetLogger sets the logger used for serializer-level error reporting.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// ErrorResponse is the error wire shape: {"error": "<message>"}.
type ErrorResponse struct {
	Error string `json:"error"`
}

func Err(msg string, err error) ErrorResponse {
	if err != nil {
		log.Warn("request failed", zap.String("msg", msg), zap.Error(err))
		if msg == "" {
			msg = err.Error()
		} else {
			msg = fmt.Sprintf("%s: %s", msg, err.Error())
		}
	}
	return ErrorResponse{Error: msg}
}

// Session is the externally visible projection of a session record. It
// carries everything except the stored credential.
type Session struct {
	ID                 string                         `json:"id"`
	ProjectDescription string                         `json:"project_description"`
	ModelName          string                         `json:"model_name"`
	Questions          []model.Question               `json:"questions,omitempty"`
	Answers            map[string]string              `json:"answers,omitempty"`
	DetailedDesign     *model.DetailedDesign          `json:"detailed_design,omitempty"`
	TableSchemas       map[string]model.TableSchema   `json:"table_schemas,omitempty"`
	GeneratedCode      map[string]model.GeneratedCode `json:"generated_code,omitempty"`
	CreatedAt          string                         `json:"created_at"`
	UpdatedAt          string                         `json:"updated_at"`
}

// BuildSession redacts the credential from a session record.
func BuildSession(s *model.Session) Session {
	return Session{
		ID:                 s.ID,
		ProjectDescription: s.ProjectDescription,
		ModelName:          s.ModelName,
		Questions:          s.Questions,
		Answers:            s.Answers,
		DetailedDesign:     s.DetailedDesign,
		TableSchemas:       s.TableSchemas,
		GeneratedCode:      s.GeneratedCode,
		CreatedAt:          s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          s.UpdatedAt.Format(time.RFC3339),
	}
}

// Message is a one-line confirmation body.
type Message struct {
	Message string `json:"message"`
}
