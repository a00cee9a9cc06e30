// Package prompt builds the natural-language prompts sent to the completion
// model. Builders are pure: identical inputs always produce identical text.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/schema-studio/schema-studio/internal/modules/model"
)

// Questions asks for 5-7 multiple-choice questions about the database
// requirements behind a project description.
func Questions(description string) string {
	return fmt.Sprintf(`
You are an expert database requirements analyst.

Based on the following project description, generate 5-7 multiple-choice questions (MCQs)
to understand the database requirements better. Each question must have 3-5 options.
Do NOT provide any free-text answers.

Project Description:
%s

The questions should cover:
1. Project complexity level
2. Expected scale/number of users
3. Data relationships complexity
4. Performance requirements
5. Security level
6. Any other domain-specific considerations

Return the response strictly in the following JSON format:

{
  "questions": [
    {
      "id": "q1",
      "question": "Your first question here?",
      "options": ["Option 1", "Option 2", "Option 3", "Option 4"]
    },
    {
      "id": "q2",
      "question": "Your second question here?",
      "options": ["Option 1", "Option 2", "Option 3"]
    }
  ]
}

Important:
- Ensure all questions have a unique "id".
- All answers must be listed under "options".
- Do not include any free-text answers.
- JSON must be valid and parseable.
`, description)
}

// DetailedDesign asks for a full database design plan. answersText is the
// formatted "- id: option" block produced by FormatAnswers.
func DetailedDesign(description, answersText string) string {
	return fmt.Sprintf(`
You are a senior database architect. Based on the project description and user answers,
create a comprehensive database design plan.

Project Description:
%s

User Requirements:
%s

Output JSON format:
{
  "design_overview": "Summary of database structure and reasoning",
  "tables": [
    {
      "table_name": "users",
      "sequence_order": 1,
      "description": "Detailed description with columns, keys, indexes, and relationships",
      "dependencies": []
    }
  ]
}
Ensure tables are ordered by dependency: tables with no foreign keys get lower
sequence_order than the tables that depend on them.
Provide detailed, production-quality design information.
`, description, answersText)
}

// TableSchema asks for the CREATE TABLE statement of one table, giving the
// full table list for foreign-key cross-reference.
func TableSchema(table model.TableInfo, allTables []string) string {
	return fmt.Sprintf(`
Generate a complete SQL CREATE TABLE statement for this table.

Table Info:
%s

All tables in the database: %s

Requirements:
1. PostgreSQL syntax (portable)
2. Include columns with proper data types
3. Define PRIMARY KEY
4. Define FOREIGN KEYS
5. Add NOT NULL & CHECK constraints
6. Include indexes for performance
7. Comment each part

Return JSON:
{
  "sql_schema": "CREATE TABLE statement",
  "indexes": ["CREATE INDEX ..."],
  "relationships": ["table dependencies"],
  "notes": "Implementation details"
}
`, table.Description, strings.Join(allTables, ", "))
}

// DatabaseCodeInput carries everything the code-generation prompt needs.
// TablesSQL is every generated schema concatenated in sequence order.
type DatabaseCodeInput struct {
	Language            string
	Framework           string
	ProjectDescription  string
	TablesSQL           string
	IncludeModels       bool
	IncludeMigrations   bool
	IncludeRepositories bool
}

// DatabaseCode asks for ORM/setup code for the chosen language and
// framework. The include flags append numbered requirement lines.
func DatabaseCode(in DatabaseCodeInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, `
You are an expert backend developer. Generate production-ready database setup code.

LANGUAGE: %s
FRAMEWORK: %s
PROJECT: %s

DATABASE SCHEMA (SQL):
%s

REQUIREMENTS:
1. Production-grade, maintainable code
2. Error handling & validation
3. Best practices for %s
4. Include all necessary imports and dependencies
`, in.Language, in.Framework, in.ProjectDescription, in.TablesSQL, in.Framework)

	if in.IncludeModels {
		b.WriteString("\n5. Generate model/entity definitions for all tables with relationships.")
	}
	if in.IncludeMigrations {
		b.WriteString("\n6. Generate migration files for schema creation.")
	}
	if in.IncludeRepositories {
		b.WriteString("\n7. Implement repository pattern with CRUD operations.")
	}

	b.WriteString(`
Return valid JSON:
{
  "files": [
    {
      "filename": "path/to/file.ext",
      "content": "complete code",
      "description": "purpose of file"
    }
  ],
  "setup_instructions": "Setup and run instructions"
}
`)
	return b.String()
}

// FormatAnswers renders a question-id to chosen-option mapping as the
// "- id: option" lines the design prompt expects, in stable key order.
func FormatAnswers(answers map[string]string) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("- %s: %s", k, answers[k]))
	}
	return strings.Join(lines, "\n")
}
