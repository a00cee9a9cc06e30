package model

// Language describes the ORM/persistence frameworks supported for one
// target language in code generation.
type Language struct {
	Frameworks  []string `json:"frameworks"`
	Description string   `json:"description"`
}

// SupportedLanguages is the static catalog served by the
// supported-languages endpoint and used to sanity-check code generation
// requests.
var SupportedLanguages = map[string]Language{
	"python": {
		Frameworks:  []string{"sqlalchemy", "django", "tortoise-orm", "peewee"},
		Description: "Python ORMs for database management",
	},
	"javascript": {
		Frameworks:  []string{"prisma", "typeorm", "sequelize", "mongoose"},
		Description: "JavaScript/TypeScript ORMs",
	},
	"typescript": {
		Frameworks:  []string{"prisma", "typeorm", "mikro-orm"},
		Description: "TypeScript ORMs with type safety",
	},
	"java": {
		Frameworks:  []string{"spring-data-jpa", "hibernate", "mybatis"},
		Description: "Java persistence frameworks",
	},
	"go": {
		Frameworks:  []string{"gorm", "sqlx", "ent"},
		Description: "Go database frameworks",
	},
	"csharp": {
		Frameworks:  []string{"entity-framework", "dapper", "nhibernate"},
		Description: "C# database frameworks",
	},
	"ruby": {
		Frameworks:  []string{"activerecord", "sequel", "rom"},
		Description: "Ruby ORMs",
	},
	"php": {
		Frameworks:  []string{"laravel-eloquent", "doctrine", "propel"},
		Description: "PHP ORMs",
	},
}
