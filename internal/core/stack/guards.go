package stack

import (
	"fmt"

	"github.com/example/stackarch/internal/core/catalog"
)

// Reasons shared by the selectability resolver and edit application.
const (
	ReasonCurrentlySelected = "currently selected"
	ReasonNotSelected       = "not selected"
	ReasonOneRequired       = "at least one option required"
	ReasonSelectDatabase    = "select a database first"
	ReasonPWAFrontend       = "requires TanStack Router or React Router"
)

// GuardResult represents the outcome of a selectability check.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

func allow() GuardResult { return GuardResult{Allowed: true} }

func deny(format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// CanSelect evaluates whether optionID can be chosen in category c right now.
// For set-valued categories choosing toggles membership, so a selected option
// is evaluated for removal. CanSelect never mutates or normalizes s.
// Rules, in precedence order:
// - a single-valued category rejects its current value
// - a required set rejects removing its last member
// - category prerequisites mirror the normalization rules
func CanSelect(s State, c catalog.Category, optionID string) GuardResult {
	info, ok := catalog.Info(c)
	if !ok {
		return deny("unknown category %s", c)
	}
	if !catalog.Has(c, optionID) {
		return deny("unknown %s option %q", c, optionID)
	}

	// Rule 1: single-valued categories reject the current value
	if !info.Multi && s.Value(c) == optionID {
		return deny(ReasonCurrentlySelected)
	}

	removing := info.Multi && s.Has(c, optionID)

	// Rule 2: the last member of a required set cannot be removed
	if removing && info.Required && len(s.Set(c)) == 1 {
		return deny(ReasonOneRequired)
	}

	// Rule 3: category prerequisites
	switch c {
	case catalog.API:
		return canSelectAPI(s, optionID)
	case catalog.Database:
		return canSelectDatabase(s, optionID)
	case catalog.ORM:
		return canSelectORM(s, optionID)
	case catalog.Auth:
		return canSelectAuth(s, optionID)
	case catalog.Addons:
		return canToggleAddon(s, optionID, removing)
	case catalog.Examples:
		if removing {
			return allow()
		}
		return canAddExample(s, optionID)
	}

	return allow()
}

func canSelectAPI(s State, id string) GuardResult {
	if id != catalog.TRPC && nativeWithOthers(s) {
		return deny("React Native combined with a web frontend requires tRPC")
	}
	return allow()
}

func canSelectDatabase(s State, id string) GuardResult {
	if required := setupDatabase(s.DBSetup); required != "" && id != required {
		return deny("%s requires %s; change the database setup first",
			catalog.Name(catalog.DBSetup, s.DBSetup), catalog.Name(catalog.Database, required))
	}
	return allow()
}

func canSelectORM(s State, id string) GuardResult {
	if s.Database == catalog.None {
		if id != catalog.None {
			return deny(ReasonSelectDatabase)
		}
		return allow()
	}
	if id == catalog.None {
		return deny("a database needs an ORM")
	}
	if required := setupORM(s.DBSetup); required != "" && id != required {
		return deny("%s requires %s",
			catalog.Name(catalog.DBSetup, s.DBSetup), catalog.Name(catalog.ORM, required))
	}
	if s.Database == catalog.MongoDB && id != catalog.Prisma {
		return deny("MongoDB requires Prisma")
	}
	return allow()
}

func canSelectAuth(s State, id string) GuardResult {
	if id == catalog.True && s.Database == catalog.None {
		return deny("authentication requires a database")
	}
	return allow()
}

func canToggleAddon(s State, id string, removing bool) GuardResult {
	if removing {
		if id == catalog.Biome && s.Has(catalog.Addons, catalog.Husky) {
			return deny("Husky requires Biome; remove Husky first")
		}
		return allow()
	}
	if (id == catalog.PWA || id == catalog.Tauri) && !hasPWAFrontend(s) {
		return deny(ReasonPWAFrontend)
	}
	return allow()
}

func canAddExample(s State, id string) GuardResult {
	if len(webFrontends(s)) == 0 {
		return deny("examples require a web frontend")
	}
	if id == catalog.Todo && s.Database == catalog.None {
		return deny("the todo example requires a database")
	}
	if id == catalog.AI && s.Backend == catalog.Elysia {
		return deny("the AI example is not available with Elysia")
	}
	return allow()
}

// setupDatabase returns the database a managed setup forces, or "".
func setupDatabase(setup string) string {
	switch setup {
	case catalog.Turso:
		return catalog.SQLite
	case catalog.PrismaPostgres, catalog.Neon:
		return catalog.Postgres
	case catalog.MongoDBAtlas:
		return catalog.MongoDB
	}
	return ""
}

// setupORM returns the ORM a managed setup forces, or "".
func setupORM(setup string) string {
	switch setup {
	case catalog.Turso:
		return catalog.Drizzle
	case catalog.PrismaPostgres, catalog.MongoDBAtlas:
		return catalog.Prisma
	}
	return ""
}
