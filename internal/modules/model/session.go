package model

import "time"

// Session tracks one user's multi-step schema design workflow. Records live
// in the session store only; there is no relational persistence behind them.
type Session struct {
	ID                 string                   `json:"id"`
	ProjectDescription string                   `json:"project_description"`
	APIKey             string                   `json:"api_key"`
	ModelName          string                   `json:"model_name"`
	Questions          []Question               `json:"questions,omitempty"`
	Answers            map[string]string        `json:"answers,omitempty"`
	DetailedDesign     *DetailedDesign          `json:"detailed_design,omitempty"`
	TableSchemas       map[string]TableSchema   `json:"table_schemas,omitempty"`
	GeneratedCode      map[string]GeneratedCode `json:"generated_code,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy. Every map and slice field gets fresh backing
// storage, so mutating the clone never reaches the original.
func (s *Session) Clone() *Session {
	cp := *s
	if s.Questions != nil {
		cp.Questions = make([]Question, len(s.Questions))
		copy(cp.Questions, s.Questions)
		for i, q := range s.Questions {
			if q.Options != nil {
				cp.Questions[i].Options = append([]string(nil), q.Options...)
			}
		}
	}
	if s.Answers != nil {
		cp.Answers = make(map[string]string, len(s.Answers))
		for k, v := range s.Answers {
			cp.Answers[k] = v
		}
	}
	if s.DetailedDesign != nil {
		d := *s.DetailedDesign
		if s.DetailedDesign.Tables != nil {
			d.Tables = make([]TableInfo, len(s.DetailedDesign.Tables))
			copy(d.Tables, s.DetailedDesign.Tables)
			for i, t := range s.DetailedDesign.Tables {
				if t.Dependencies != nil {
					d.Tables[i].Dependencies = append([]string(nil), t.Dependencies...)
				}
			}
		}
		cp.DetailedDesign = &d
	}
	if s.TableSchemas != nil {
		cp.TableSchemas = make(map[string]TableSchema, len(s.TableSchemas))
		for k, v := range s.TableSchemas {
			if v.Relationships != nil {
				v.Relationships = append([]string(nil), v.Relationships...)
			}
			cp.TableSchemas[k] = v
		}
	}
	if s.GeneratedCode != nil {
		cp.GeneratedCode = make(map[string]GeneratedCode, len(s.GeneratedCode))
		for k, v := range s.GeneratedCode {
			if v.Files != nil {
				v.Files = append([]CodeFile(nil), v.Files...)
			}
			cp.GeneratedCode[k] = v
		}
	}
	return &cp
}

// Question is one multiple-choice clarifying question. Options are the only
// valid answers; free-text answers are not part of the flow.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// DetailedDesign is the model-produced design plan for the whole database.
type DetailedDesign struct {
	DesignOverview string      `json:"design_overview"`
	Tables         []TableInfo `json:"tables"`
}

// TableInfo describes one table in the design. SequenceOrder linearizes
// tables so that foreign-key dependencies come first.
type TableInfo struct {
	TableName     string   `json:"table_name"`
	SequenceOrder int      `json:"sequence_order"`
	Description   string   `json:"description"`
	Dependencies  []string `json:"dependencies,omitempty"`
}

// TableSchema holds the generated SQL for one table. SQLSchema already has
// the "-- Indexes" and "-- Notes" blocks appended.
type TableSchema struct {
	SQLSchema     string   `json:"sql_schema"`
	Relationships []string `json:"relationships"`
}

// GeneratedCode is one language/framework code generation result.
type GeneratedCode struct {
	Files             []CodeFile `json:"files"`
	SetupInstructions string     `json:"setup_instructions"`
}

type CodeFile struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	Description string `json:"description"`
}

// Table finds a table by name in the detailed design.
func (d *DetailedDesign) Table(name string) (TableInfo, bool) {
	for _, t := range d.Tables {
		if t.TableName == name {
			return t, true
		}
	}
	return TableInfo{}, false
}

// TableNames returns all table names in declaration order.
func (d *DetailedDesign) TableNames() []string {
	names := make([]string, 0, len(d.Tables))
	for _, t := range d.Tables {
		names = append(names, t.TableName)
	}
	return names
}
