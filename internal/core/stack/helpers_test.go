package stack

import (
	"math/rand"
	"slices"

	"github.com/example/stackarch/internal/core/catalog"
)

// randomState builds an arbitrary, usually inconsistent, state.
func randomState(r *rand.Rand) State {
	s := Default()
	for _, c := range catalog.Categories() {
		opts := catalog.Get(c)
		if catalog.IsMulti(c) {
			var ids []string
			for _, o := range opts {
				if r.Intn(3) == 0 {
					ids = append(ids, o.ID)
				}
			}
			s = s.WithSet(c, ids)
			continue
		}
		s = s.With(c, opts[r.Intn(len(opts))].ID)
	}
	return s
}

// violatedInvariants checks the compatibility invariants directly, without
// going through the rule table.
func violatedInvariants(s State) []string {
	var out []string
	fail := func(name string, ok bool) {
		if !ok {
			out = append(out, name)
		}
	}
	has := func(ids []string, id string) bool { return slices.Contains(ids, id) }

	fail("frontend non-empty", len(s.Frontend) > 0)
	fail("none is exclusive", !has(s.Frontend, catalog.None) || len(s.Frontend) == 1)

	web := 0
	for _, id := range s.Frontend {
		if catalog.IsWebFrontend(id) {
			web++
		}
	}
	fail("single web frontend", web <= 1)

	if s.Database == catalog.None {
		fail("no database disables orm", s.ORM == catalog.None)
		fail("no database disables auth", s.Auth == catalog.False)
		fail("no database disables setup", s.DBSetup == catalog.None)
	} else {
		fail("database needs orm", s.ORM != catalog.None)
	}
	if s.Database == catalog.MongoDB {
		fail("mongodb uses prisma", s.ORM == catalog.Prisma)
	}
	switch s.DBSetup {
	case catalog.Turso:
		fail("turso", s.Database == catalog.SQLite && s.ORM == catalog.Drizzle)
	case catalog.PrismaPostgres:
		fail("prisma-postgres", s.Database == catalog.Postgres && s.ORM == catalog.Prisma)
	case catalog.MongoDBAtlas:
		fail("mongodb-atlas", s.Database == catalog.MongoDB && s.ORM == catalog.Prisma)
	case catalog.Neon:
		fail("neon", s.Database == catalog.Postgres)
	}

	if has(s.Frontend, catalog.Native) {
		others := slices.ContainsFunc(s.Frontend, func(id string) bool {
			return id != catalog.Native && id != catalog.None
		})
		fail("native with web uses trpc", !others || s.API == catalog.TRPC)
	}
	if has(s.Addons, catalog.PWA) || has(s.Addons, catalog.Tauri) {
		fail("pwa frontend", has(s.Frontend, catalog.TanStackRouter) || has(s.Frontend, catalog.ReactRouter))
	}
	if has(s.Addons, catalog.Husky) {
		fail("husky needs biome", has(s.Addons, catalog.Biome))
	}
	if len(s.Examples) > 0 {
		fail("examples need web", web > 0)
	}
	if has(s.Examples, catalog.Todo) {
		fail("todo needs database", s.Database != catalog.None)
	}
	if has(s.Examples, catalog.AI) {
		fail("ai not on elysia", s.Backend != catalog.Elysia)
	}
	return out
}

// mustApply applies an edit and normalizes, failing on a rejected edit.
func mustApply(s State, edits ...Edit) State {
	for _, e := range edits {
		next, r := Apply(s, e)
		if !r.Allowed {
			panic("edit " + e.String() + " rejected: " + r.Reason)
		}
		s = Normalize(next)
	}
	return s
}
