// Package catalog holds the static option metadata for every configuration category.
// This is part of the Functional Core - the catalog is built once and never mutated.
package catalog

import (
	"slices"
	"strings"
)

// Category identifies one configuration dimension.
type Category string

const (
	Frontend       Category = "frontend"
	Runtime        Category = "runtime"
	Backend        Category = "backend"
	API            Category = "api"
	Database       Category = "database"
	ORM            Category = "orm"
	DBSetup        Category = "dbSetup"
	Auth           Category = "auth"
	PackageManager Category = "packageManager"
	Addons         Category = "addons"
	Examples       Category = "examples"
	Git            Category = "git"
	Install        Category = "install"

	// ProjectName is editable but carries no options.
	ProjectName Category = "projectName"
)

// Option ids referenced by compatibility rules.
const (
	None  = "none"
	True  = "true"
	False = "false"

	TanStackRouter = "tanstack-router"
	ReactRouter    = "react-router"
	TanStackStart  = "tanstack-start"
	Next           = "next"
	Native         = "native"

	Bun  = "bun"
	Node = "node"

	Hono    = "hono"
	Elysia  = "elysia"
	Express = "express"

	TRPC = "trpc"
	ORPC = "orpc"

	SQLite   = "sqlite"
	Postgres = "postgres"
	MySQL    = "mysql"
	MongoDB  = "mongodb"

	Drizzle = "drizzle"
	Prisma  = "prisma"

	Turso          = "turso"
	PrismaPostgres = "prisma-postgres"
	MongoDBAtlas   = "mongodb-atlas"
	Neon           = "neon"

	NPM  = "npm"
	PNPM = "pnpm"

	PWA       = "pwa"
	Tauri     = "tauri"
	Biome     = "biome"
	Husky     = "husky"
	Starlight = "starlight"
	Turborepo = "turborepo"

	Todo = "todo"
	AI   = "ai"
)

// DefaultProjectName is the project name of a fresh configuration.
const DefaultProjectName = "my-app"

// Option is one selectable value of a category.
type Option struct {
	ID          string
	Name        string
	Description string
	Default     bool
}

// CategoryInfo describes a category and its ordered options.
type CategoryInfo struct {
	Category Category
	Title    string
	Multi    bool // set-valued
	Required bool // set-valued and must stay non-empty
	Options  []Option
}

var categories = []CategoryInfo{
	{
		Category: Frontend,
		Title:    "Frontend",
		Multi:    true,
		Required: true,
		Options: []Option{
			{ID: TanStackRouter, Name: "TanStack Router", Description: "Modern type-safe router for React", Default: true},
			{ID: ReactRouter, Name: "React Router", Description: "Declarative routing for React"},
			{ID: TanStackStart, Name: "TanStack Start", Description: "Full-stack React framework powered by TanStack Router"},
			{ID: Next, Name: "Next.js", Description: "React framework with hybrid rendering"},
			{ID: Native, Name: "React Native", Description: "Expo-based mobile application"},
			{ID: None, Name: "No Frontend", Description: "API-only backend"},
		},
	},
	{
		Category: Runtime,
		Title:    "Runtime",
		Options: []Option{
			{ID: Bun, Name: "Bun", Description: "Fast all-in-one JavaScript runtime", Default: true},
			{ID: Node, Name: "Node.js", Description: "Traditional Node.js runtime"},
		},
	},
	{
		Category: Backend,
		Title:    "Backend Framework",
		Options: []Option{
			{ID: Hono, Name: "Hono", Description: "Ultrafast web framework", Default: true},
			{ID: Elysia, Name: "Elysia", Description: "TypeScript framework with end-to-end type safety"},
			{ID: Express, Name: "Express", Description: "Minimal Node.js web framework"},
		},
	},
	{
		Category: API,
		Title:    "API",
		Options: []Option{
			{ID: TRPC, Name: "tRPC", Description: "End-to-end type-safe APIs", Default: true},
			{ID: ORPC, Name: "oRPC", Description: "Typesafe APIs with OpenAPI support"},
			{ID: None, Name: "No API", Description: "No API layer"},
		},
	},
	{
		Category: Database,
		Title:    "Database",
		Options: []Option{
			{ID: SQLite, Name: "SQLite", Description: "File-based SQL database", Default: true},
			{ID: Postgres, Name: "PostgreSQL", Description: "Advanced SQL database"},
			{ID: MySQL, Name: "MySQL", Description: "Popular relational database"},
			{ID: MongoDB, Name: "MongoDB", Description: "NoSQL document database"},
			{ID: None, Name: "No Database", Description: "Skip database integration"},
		},
	},
	{
		Category: ORM,
		Title:    "ORM",
		Options: []Option{
			{ID: Drizzle, Name: "Drizzle", Description: "TypeScript ORM", Default: true},
			{ID: Prisma, Name: "Prisma", Description: "Next-gen ORM"},
			{ID: None, Name: "No ORM", Description: "Skip ORM integration"},
		},
	},
	{
		Category: DBSetup,
		Title:    "Database Setup",
		Options: []Option{
			{ID: None, Name: "Basic Setup", Description: "No cloud database integration", Default: true},
			{ID: Turso, Name: "Turso", Description: "Distributed SQLite with edge replicas"},
			{ID: PrismaPostgres, Name: "Prisma PostgreSQL", Description: "Managed PostgreSQL by Prisma"},
			{ID: MongoDBAtlas, Name: "MongoDB Atlas", Description: "Managed MongoDB clusters"},
			{ID: Neon, Name: "Neon Postgres", Description: "Serverless PostgreSQL"},
		},
	},
	{
		Category: Auth,
		Title:    "Authentication",
		Options: []Option{
			{ID: True, Name: "Better Auth", Description: "Email and password authentication", Default: true},
			{ID: False, Name: "No Auth", Description: "Skip authentication"},
		},
	},
	{
		Category: PackageManager,
		Title:    "Package Manager",
		Options: []Option{
			{ID: NPM, Name: "npm", Description: "Default Node.js package manager"},
			{ID: PNPM, Name: "pnpm", Description: "Fast, disk space efficient package manager"},
			{ID: Bun, Name: "bun", Description: "All-in-one toolkit", Default: true},
		},
	},
	{
		Category: Addons,
		Title:    "Addons",
		Multi:    true,
		Options: []Option{
			{ID: PWA, Name: "PWA", Description: "Progressive Web App support"},
			{ID: Tauri, Name: "Tauri", Description: "Desktop application shell"},
			{ID: Biome, Name: "Biome", Description: "Formatter and linter"},
			{ID: Husky, Name: "Husky", Description: "Git hooks"},
			{ID: Starlight, Name: "Starlight", Description: "Documentation site"},
			{ID: Turborepo, Name: "Turborepo", Description: "Monorepo build system", Default: true},
		},
	},
	{
		Category: Examples,
		Title:    "Examples",
		Multi:    true,
		Options: []Option{
			{ID: Todo, Name: "Todo Example", Description: "Simple todo application"},
			{ID: AI, Name: "AI Example", Description: "AI chat integration"},
		},
	},
	{
		Category: Git,
		Title:    "Git",
		Options: []Option{
			{ID: True, Name: "Initialize Git", Description: "Create a git repository", Default: true},
			{ID: False, Name: "Skip Git", Description: "Do not initialize git"},
		},
	},
	{
		Category: Install,
		Title:    "Install Dependencies",
		Options: []Option{
			{ID: True, Name: "Install", Description: "Install packages after scaffolding", Default: true},
			{ID: False, Name: "Skip Install", Description: "Install packages later"},
		},
	},
}

var (
	webFrontends    = []string{TanStackRouter, ReactRouter, TanStackStart, Next}
	pwaFrontends    = []string{TanStackRouter, ReactRouter}
	nativeFrontends = []string{Native}
)

// Categories returns every option category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = c.Category
	}
	return out
}

// Info returns the metadata for a category.
func Info(c Category) (CategoryInfo, bool) {
	for _, info := range categories {
		if info.Category == c {
			info.Options = slices.Clone(info.Options)
			return info, true
		}
	}
	return CategoryInfo{}, false
}

// Get returns the ordered options of a category, or nil for an unknown category.
func Get(c Category) []Option {
	info, ok := Info(c)
	if !ok {
		return nil
	}
	return info.Options
}

// IsMulti reports whether a category holds a set of options.
func IsMulti(c Category) bool {
	info, ok := Info(c)
	return ok && info.Multi
}

// IsRequired reports whether a set-valued category must stay non-empty.
func IsRequired(c Category) bool {
	info, ok := Info(c)
	return ok && info.Required
}

// Default returns the default option of a single-valued category.
func Default(c Category) string {
	for _, o := range Get(c) {
		if o.Default {
			return o.ID
		}
	}
	return ""
}

// DefaultSet returns the default members of a set-valued category in catalog order.
func DefaultSet(c Category) []string {
	out := []string{}
	for _, o := range Get(c) {
		if o.Default {
			out = append(out, o.ID)
		}
	}
	return out
}

// Lookup finds an option by id.
func Lookup(c Category, id string) (Option, bool) {
	for _, o := range Get(c) {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Has reports whether id is an option of c.
func Has(c Category, id string) bool {
	_, ok := Lookup(c, id)
	return ok
}

// Name returns the display name of an option, falling back to its id.
func Name(c Category, id string) string {
	if o, ok := Lookup(c, id); ok {
		return o.Name
	}
	return id
}

// Index returns the catalog position of id, or -1.
func Index(c Category, id string) int {
	for i, o := range Get(c) {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// IsWebFrontend reports whether a frontend tag is a web frontend.
func IsWebFrontend(id string) bool { return slices.Contains(webFrontends, id) }

// IsPWAFrontend reports whether a frontend tag supports PWA and Tauri addons.
func IsPWAFrontend(id string) bool { return slices.Contains(pwaFrontends, id) }

// IsNativeFrontend reports whether a frontend tag is a mobile frontend.
func IsNativeFrontend(id string) bool { return slices.Contains(nativeFrontends, id) }

// ParseCategory resolves user input such as "db-setup", "DB_SETUP" or "dbSetup".
func ParseCategory(s string) (Category, bool) {
	key := foldCategory(s)
	if key == foldCategory(string(ProjectName)) || key == "name" {
		return ProjectName, true
	}
	if key == "backendframework" {
		return Backend, true
	}
	for _, c := range categories {
		if foldCategory(string(c.Category)) == key {
			return c.Category, true
		}
	}
	return "", false
}

func foldCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}
