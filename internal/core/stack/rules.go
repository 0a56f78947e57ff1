package stack

import (
	"slices"

	"github.com/example/stackarch/internal/core/catalog"
)

// RuleID names a compatibility rule.
type RuleID string

const (
	RuleFrontendExclusive   RuleID = "frontend-exclusive"
	RuleSingleWebFrontend   RuleID = "single-web-frontend"
	RuleTursoSetup          RuleID = "turso-setup"
	RulePrismaPostgresSetup RuleID = "prisma-postgres-setup"
	RuleMongoDBAtlasSetup   RuleID = "mongodb-atlas-setup"
	RuleNeonSetup           RuleID = "neon-setup"
	RuleDatabaseNone        RuleID = "database-none"
	RuleMongoDBPrisma       RuleID = "mongodb-prisma"
	RuleORMRequired         RuleID = "orm-required"
	RuleNativeTRPC          RuleID = "native-trpc"
	RulePWAFrontend         RuleID = "pwa-frontend"
	RuleHuskyBiome          RuleID = "husky-biome"
	RuleExamplesWeb         RuleID = "examples-web"
	RuleTodoDatabase        RuleID = "todo-database"
	RuleAIBackend           RuleID = "ai-backend"
)

// Rule is a guarded rewrite. Fix is only applied when Violated holds and every
// rule of a lower Stratum is satisfied; a rule only writes fields that rules of
// its own or a higher stratum read, which makes the fixpoint order-independent.
type Rule struct {
	ID         RuleID
	Stratum    int
	Categories []catalog.Category // trigger first, then every forced category
	Note       string
	Violated   func(State) bool
	Fix        func(State) State
}

var rules = []Rule{
	// Stratum 0: frontend shape and managed database setups.
	{
		ID:         RuleFrontendExclusive,
		Stratum:    0,
		Categories: []catalog.Category{catalog.Frontend},
		Note:       "\"No Frontend\" cannot be combined with other frontends",
		Violated: func(s State) bool {
			return len(s.Frontend) == 0 || (slices.Contains(s.Frontend, catalog.None) && len(s.Frontend) > 1)
		},
		Fix: func(s State) State {
			if len(s.Frontend) == 0 {
				return s.WithSet(catalog.Frontend, []string{catalog.None})
			}
			return s.WithSet(catalog.Frontend, without(s.Frontend, catalog.None))
		},
	},
	{
		ID:         RuleSingleWebFrontend,
		Stratum:    0,
		Categories: []catalog.Category{catalog.Frontend},
		Note:       "only one web frontend can be selected",
		Violated: func(s State) bool {
			return len(webFrontends(s)) > 1
		},
		Fix: func(s State) State {
			return s.WithSet(catalog.Frontend, without(s.Frontend, webFrontends(s)[1:]...))
		},
	},
	setupRule(RuleTursoSetup, catalog.Turso, catalog.SQLite, catalog.Drizzle),
	setupRule(RulePrismaPostgresSetup, catalog.PrismaPostgres, catalog.Postgres, catalog.Prisma),
	setupRule(RuleMongoDBAtlasSetup, catalog.MongoDBAtlas, catalog.MongoDB, catalog.Prisma),
	setupRule(RuleNeonSetup, catalog.Neon, catalog.Postgres, ""),

	// Stratum 1: database drives ORM and auth.
	{
		ID:         RuleDatabaseNone,
		Stratum:    1,
		Categories: []catalog.Category{catalog.Database, catalog.ORM, catalog.Auth, catalog.DBSetup},
		Note:       "without a database the ORM, authentication and database setup are disabled",
		Violated: func(s State) bool {
			return s.Database == catalog.None &&
				(s.ORM != catalog.None || s.Auth != catalog.False || s.DBSetup != catalog.None)
		},
		Fix: func(s State) State {
			return s.With(catalog.ORM, catalog.None).
				With(catalog.Auth, catalog.False).
				With(catalog.DBSetup, catalog.None)
		},
	},
	{
		ID:         RuleMongoDBPrisma,
		Stratum:    1,
		Categories: []catalog.Category{catalog.Database, catalog.ORM},
		Note:       "MongoDB requires Prisma",
		Violated: func(s State) bool {
			return s.Database == catalog.MongoDB && s.ORM != catalog.Prisma
		},
		Fix: func(s State) State {
			return s.With(catalog.ORM, catalog.Prisma)
		},
	},
	{
		ID:         RuleORMRequired,
		Stratum:    1,
		Categories: []catalog.Category{catalog.Database, catalog.ORM},
		Note:       "a database needs an ORM",
		Violated: func(s State) bool {
			return s.Database != catalog.None && s.ORM == catalog.None
		},
		Fix: func(s State) State {
			if s.Database == catalog.MongoDB {
				return s.With(catalog.ORM, catalog.Prisma)
			}
			return s.With(catalog.ORM, catalog.Drizzle)
		},
	},

	// Stratum 2: features that depend on frontend, backend and database.
	{
		ID:         RuleNativeTRPC,
		Stratum:    2,
		Categories: []catalog.Category{catalog.Frontend, catalog.API},
		Note:       "React Native combined with a web frontend requires tRPC",
		Violated: func(s State) bool {
			return nativeWithOthers(s) && s.API != catalog.TRPC
		},
		Fix: func(s State) State {
			return s.With(catalog.API, catalog.TRPC)
		},
	},
	{
		ID:         RulePWAFrontend,
		Stratum:    2,
		Categories: []catalog.Category{catalog.Addons, catalog.Frontend},
		Note:       "PWA and Tauri require TanStack Router or React Router",
		Violated: func(s State) bool {
			return (s.Has(catalog.Addons, catalog.PWA) || s.Has(catalog.Addons, catalog.Tauri)) && !hasPWAFrontend(s)
		},
		Fix: func(s State) State {
			return s.WithSet(catalog.Addons, without(s.Addons, catalog.PWA, catalog.Tauri))
		},
	},
	{
		ID:         RuleHuskyBiome,
		Stratum:    2,
		Categories: []catalog.Category{catalog.Addons},
		Note:       "Husky requires Biome",
		Violated: func(s State) bool {
			return s.Has(catalog.Addons, catalog.Husky) && !s.Has(catalog.Addons, catalog.Biome)
		},
		Fix: func(s State) State {
			return s.WithSet(catalog.Addons, append(s.Set(catalog.Addons), catalog.Biome))
		},
	},
	{
		ID:         RuleExamplesWeb,
		Stratum:    2,
		Categories: []catalog.Category{catalog.Examples, catalog.Frontend},
		Note:       "examples require a web frontend",
		Violated: func(s State) bool {
			return len(s.Examples) > 0 && len(webFrontends(s)) == 0
		},
		Fix: func(s State) State {
			return s.WithSet(catalog.Examples, nil)
		},
	},
	{
		ID:         RuleTodoDatabase,
		Stratum:    2,
		Categories: []catalog.Category{catalog.Examples, catalog.Database},
		Note:       "the todo example requires a database",
		Violated: func(s State) bool {
			return s.Has(catalog.Examples, catalog.Todo) && s.Database == catalog.None
		},
		Fix: func(s State) State {
			return s.WithSet(catalog.Examples, without(s.Examples, catalog.Todo))
		},
	},
	{
		ID:         RuleAIBackend,
		Stratum:    2,
		Categories: []catalog.Category{catalog.Examples, catalog.Backend},
		Note:       "the AI example is not available with Elysia",
		Violated: func(s State) bool {
			return s.Has(catalog.Examples, catalog.AI) && s.Backend == catalog.Elysia
		},
		Fix: func(s State) State {
			return s.WithSet(catalog.Examples, without(s.Examples, catalog.AI))
		},
	},
}

// setupRule builds the rule for a managed database setup. An empty orm leaves
// the ORM choice open.
func setupRule(id RuleID, setup, database, orm string) Rule {
	cats := []catalog.Category{catalog.DBSetup, catalog.Database}
	if orm != "" {
		cats = append(cats, catalog.ORM)
	}
	note := catalog.Name(catalog.DBSetup, setup) + " requires " + catalog.Name(catalog.Database, database)
	if orm != "" {
		note += " with " + catalog.Name(catalog.ORM, orm)
	}
	return Rule{
		ID:         id,
		Stratum:    0,
		Categories: cats,
		Note:       note,
		Violated: func(s State) bool {
			return s.DBSetup == setup && (s.Database != database || (orm != "" && s.ORM != orm))
		},
		Fix: func(s State) State {
			s = s.With(catalog.Database, database)
			if orm != "" {
				s = s.With(catalog.ORM, orm)
			}
			return s
		},
	}
}

// Rules returns the rule table in declaration order.
func Rules() []Rule {
	return slices.Clone(rules)
}

// LookupRule finds a rule by id.
func LookupRule(id RuleID) (Rule, bool) {
	for _, r := range rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// Violations returns the rules s violates, ignoring strata.
func Violations(s State) []Rule {
	var out []Rule
	for _, r := range rules {
		if r.Violated(s) {
			out = append(out, r)
		}
	}
	return out
}

func webFrontends(s State) []string {
	var out []string
	for _, id := range s.Frontend {
		if catalog.IsWebFrontend(id) {
			out = append(out, id)
		}
	}
	return out
}

func hasPWAFrontend(s State) bool {
	return slices.ContainsFunc(s.Frontend, catalog.IsPWAFrontend)
}

func hasNativeFrontend(s State) bool {
	return slices.ContainsFunc(s.Frontend, catalog.IsNativeFrontend)
}

// nativeWithOthers reports a native frontend next to any other real frontend.
func nativeWithOthers(s State) bool {
	if !hasNativeFrontend(s) {
		return false
	}
	return slices.ContainsFunc(s.Frontend, func(id string) bool {
		return id != catalog.None && !catalog.IsNativeFrontend(id)
	})
}
