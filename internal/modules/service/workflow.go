package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/schema-studio/schema-studio/internal/config"
	"github.com/schema-studio/schema-studio/internal/infra/gemini"
	"github.com/schema-studio/schema-studio/internal/modules/model"
	"github.com/schema-studio/schema-studio/internal/modules/repo"
	"github.com/schema-studio/schema-studio/internal/pkg/extract"
	"github.com/schema-studio/schema-studio/internal/pkg/prompt"
	"go.uber.org/zap"
)

// CompletionClient is the outbound call to the text-generation service.
type CompletionClient interface {
	GenerateContent(ctx context.Context, req gemini.CompletionRequest) (string, error)
}

// WorkflowService runs the four sequential design steps over a session.
// Each step reads session state written by its predecessor.
type WorkflowService interface {
	GenerateQuestions(ctx context.Context, in GenerateQuestionsInput) (*GenerateQuestionsOutput, error)
	GenerateDesign(ctx context.Context, in GenerateDesignInput) (*GenerateDesignOutput, error)
	GenerateTableSchema(ctx context.Context, in GenerateTableSchemaInput) (*GenerateTableSchemaOutput, error)
	GenerateDatabaseCode(ctx context.Context, in GenerateDatabaseCodeInput) (*GenerateDatabaseCodeOutput, error)
}

type workflowService struct {
	r     repo.SessionRepo
	llm   CompletionClient
	cfg   *config.Config
	log   *zap.Logger
	locks sessionLocks
}

func NewWorkflowService(r repo.SessionRepo, llm CompletionClient, cfg *config.Config, log *zap.Logger) WorkflowService {
	return &workflowService{
		r:   r,
		llm: llm,
		cfg: cfg,
		log: log,
	}
}

// sessionLocks serializes read-modify-write cycles per session id, so that
// concurrent schema generations for two tables of one session cannot drop
// each other's result. Entries are refcounted and reaped once the last
// holder releases, keeping the map bounded by in-flight sessions rather
// than all sessions ever seen.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

type sessionLocks struct {
	mu sync.Mutex
	m  map[string]*sessionLock
}

func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[string]*sessionLock)
	}
	sl, ok := l.m[id]
	if !ok {
		sl = &sessionLock{}
		l.m[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.m, id)
		}
		l.mu.Unlock()
	}
}

type GenerateQuestionsInput struct {
	Description string
	APIKey      string
	ModelName   string
}

type GenerateQuestionsOutput struct {
	SessionID          string           `json:"session_id"`
	Questions          []model.Question `json:"questions"`
	ProjectDescription string           `json:"project_description"`
}

func (s *workflowService) GenerateQuestions(ctx context.Context, in GenerateQuestionsInput) (*GenerateQuestionsOutput, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if in.APIKey == "" && s.cfg.Gemini.APIKey == "" {
		return nil, ErrCredentialRequired
	}

	text, err := s.llm.GenerateContent(ctx, gemini.CompletionRequest{
		Prompt: prompt.Questions(in.Description),
		Model:  in.ModelName,
		APIKey: in.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	var payload struct {
		Questions []model.Question `json:"questions"`
	}
	if err := extract.Object(text, &payload); err != nil {
		return nil, fmt.Errorf("extract questions: %w", err)
	}
	if len(payload.Questions) == 0 {
		return nil, fmt.Errorf("%w: questions", ErrMalformedCompletion)
	}

	session := &model.Session{
		ID:                 "session_" + uuid.NewString(),
		ProjectDescription: in.Description,
		APIKey:             in.APIKey,
		ModelName:          in.ModelName,
		Questions:          payload.Questions,
	}
	if err := s.r.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("session created",
		zap.String("session_id", session.ID),
		zap.Int("questions", len(payload.Questions)))

	return &GenerateQuestionsOutput{
		SessionID:          session.ID,
		Questions:          payload.Questions,
		ProjectDescription: in.Description,
	}, nil
}

type GenerateDesignInput struct {
	SessionID string
	Answers   map[string]string
}

type GenerateDesignOutput struct {
	SessionID      string            `json:"session_id"`
	DetailedPrompt string            `json:"detailed_prompt"`
	Tables         []model.TableInfo `json:"tables"`
}

func (s *workflowService) GenerateDesign(ctx context.Context, in GenerateDesignInput) (*GenerateDesignOutput, error) {
	session, err := s.r.Get(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	text, err := s.llm.GenerateContent(ctx, gemini.CompletionRequest{
		Prompt: prompt.DetailedDesign(session.ProjectDescription, prompt.FormatAnswers(in.Answers)),
		Model:  session.ModelName,
		APIKey: session.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("generate design: %w", err)
	}

	var design model.DetailedDesign
	if err := extract.Object(text, &design); err != nil {
		return nil, fmt.Errorf("extract design: %w", err)
	}
	if len(design.Tables) == 0 {
		return nil, fmt.Errorf("%w: tables", ErrMalformedCompletion)
	}

	if err := s.mutate(ctx, in.SessionID, func(ss *model.Session) {
		ss.Answers = in.Answers
		ss.DetailedDesign = &design
	}); err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nTables:\n", design.DesignOverview)
	for _, t := range design.Tables {
		fmt.Fprintf(&b, "\n%d. %s: %s\n", t.SequenceOrder, t.TableName, t.Description)
	}

	return &GenerateDesignOutput{
		SessionID:      in.SessionID,
		DetailedPrompt: b.String(),
		Tables:         design.Tables,
	}, nil
}

type GenerateTableSchemaInput struct {
	SessionID string
	TableName string
}

type GenerateTableSchemaOutput struct {
	TableName     string   `json:"table_name"`
	SQLSchema     string   `json:"sql_schema"`
	Relationships []string `json:"relationships"`
}

func (s *workflowService) GenerateTableSchema(ctx context.Context, in GenerateTableSchemaInput) (*GenerateTableSchemaOutput, error) {
	session, err := s.r.Get(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	if session.DetailedDesign == nil {
		return nil, ErrDesignNotGenerated
	}
	table, ok := session.DetailedDesign.Table(in.TableName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, in.TableName)
	}

	text, err := s.llm.GenerateContent(ctx, gemini.CompletionRequest{
		Prompt: prompt.TableSchema(table, session.DetailedDesign.TableNames()),
		Model:  session.ModelName,
		APIKey: session.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("generate table schema: %w", err)
	}

	var payload struct {
		SQLSchema     string   `json:"sql_schema"`
		Indexes       []string `json:"indexes"`
		Relationships []string `json:"relationships"`
		Notes         string   `json:"notes"`
	}
	if err := extract.Object(text, &payload); err != nil {
		return nil, fmt.Errorf("extract table schema: %w", err)
	}
	if payload.SQLSchema == "" {
		return nil, fmt.Errorf("%w: sql_schema", ErrMalformedCompletion)
	}

	fullSchema := payload.SQLSchema
	if len(payload.Indexes) > 0 {
		fullSchema += "\n\n-- Indexes\n" + strings.Join(payload.Indexes, "\n")
	}
	if payload.Notes != "" {
		fullSchema += "\n\n-- Notes: " + payload.Notes
	}
	if payload.Relationships == nil {
		payload.Relationships = []string{}
	}

	if err := s.mutate(ctx, in.SessionID, func(ss *model.Session) {
		if ss.TableSchemas == nil {
			ss.TableSchemas = make(map[string]model.TableSchema)
		}
		ss.TableSchemas[in.TableName] = model.TableSchema{
			SQLSchema:     fullSchema,
			Relationships: payload.Relationships,
		}
	}); err != nil {
		return nil, err
	}

	return &GenerateTableSchemaOutput{
		TableName:     in.TableName,
		SQLSchema:     fullSchema,
		Relationships: payload.Relationships,
	}, nil
}

type GenerateDatabaseCodeInput struct {
	SessionID           string
	Language            string
	Framework           string
	IncludeModels       bool
	IncludeMigrations   bool
	IncludeRepositories bool
}

type GenerateDatabaseCodeOutput struct {
	SessionID         string           `json:"session_id"`
	Language          string           `json:"language"`
	Framework         string           `json:"framework"`
	Files             []model.CodeFile `json:"files"`
	SetupInstructions string           `json:"setup_instructions"`
}

func (s *workflowService) GenerateDatabaseCode(ctx context.Context, in GenerateDatabaseCodeInput) (*GenerateDatabaseCodeOutput, error) {
	session, err := s.r.Get(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	// both preconditions are checked before any completion call
	if session.DetailedDesign == nil {
		return nil, ErrDesignNotGenerated
	}
	if len(session.TableSchemas) == 0 {
		return nil, ErrNoSchemasGenerated
	}

	tables := make([]model.TableInfo, len(session.DetailedDesign.Tables))
	copy(tables, session.DetailedDesign.Tables)
	sort.Slice(tables, func(i, j int) bool {
		return tables[i].SequenceOrder < tables[j].SequenceOrder
	})

	parts := make([]string, 0, len(tables))
	for _, t := range tables {
		parts = append(parts, fmt.Sprintf("-- %s\n%s", t.TableName, session.TableSchemas[t.TableName].SQLSchema))
	}
	tablesSQL := strings.Join(parts, "\n\n")

	text, err := s.llm.GenerateContent(ctx, gemini.CompletionRequest{
		Prompt: prompt.DatabaseCode(prompt.DatabaseCodeInput{
			Language:            in.Language,
			Framework:           in.Framework,
			ProjectDescription:  session.ProjectDescription,
			TablesSQL:           tablesSQL,
			IncludeModels:       in.IncludeModels,
			IncludeMigrations:   in.IncludeMigrations,
			IncludeRepositories: in.IncludeRepositories,
		}),
		Model:  session.ModelName,
		APIKey: session.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("generate database code: %w", err)
	}

	var payload struct {
		Files             []model.CodeFile `json:"files"`
		SetupInstructions string           `json:"setup_instructions"`
	}
	if err := extract.Object(text, &payload); err != nil {
		return nil, fmt.Errorf("extract database code: %w", err)
	}
	if len(payload.Files) == 0 {
		return nil, fmt.Errorf("%w: files", ErrMalformedCompletion)
	}

	codeKey := in.Language + "_" + in.Framework
	if err := s.mutate(ctx, in.SessionID, func(ss *model.Session) {
		if ss.GeneratedCode == nil {
			ss.GeneratedCode = make(map[string]model.GeneratedCode)
		}
		ss.GeneratedCode[codeKey] = model.GeneratedCode{
			Files:             payload.Files,
			SetupInstructions: payload.SetupInstructions,
		}
	}); err != nil {
		return nil, err
	}

	return &GenerateDatabaseCodeOutput{
		SessionID:         in.SessionID,
		Language:          in.Language,
		Framework:         in.Framework,
		Files:             payload.Files,
		SetupInstructions: payload.SetupInstructions,
	}, nil
}

// mutate re-reads the session under its lock, applies fn and writes it back.
// The completion call stays outside the lock; only the read-modify-write
// cycle is serialized.
func (s *workflowService) mutate(ctx context.Context, id string, fn func(*model.Session)) error {
	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.r.Get(ctx, id)
	if err != nil {
		return err
	}
	fn(session)
	if err := s.r.Update(ctx, session); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}
