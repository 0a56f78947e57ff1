package stack

import (
	"slices"
	"strings"
	"testing"

	"github.com/example/stackarch/internal/core/catalog"
)

func TestScenario_MongoDBForcesPrisma(t *testing.T) {
	raw, r := Apply(Default(), Edit{Category: catalog.Database, Op: OpSet, Value: catalog.MongoDB})
	if !r.Allowed {
		t.Fatalf("edit rejected: %s", r.Reason)
	}

	res, diags := Evaluate(raw)

	if res.State.ORM != catalog.Prisma {
		t.Errorf("ORM = %q, want prisma", res.State.ORM)
	}
	if len(diags[catalog.ORM].Notes) == 0 || !diags[catalog.ORM].HasIssue {
		t.Errorf("expected orm diagnostic, got %+v", diags[catalog.ORM])
	}
	if cmd := Command(res.State); !strings.Contains(cmd, "--database mongodb --orm prisma") {
		t.Errorf("command = %q", cmd)
	}
}

func TestScenario_NoDatabase(t *testing.T) {
	s := mustApply(Default(), Edit{Category: catalog.Database, Op: OpSet, Value: catalog.None})

	if s.ORM != catalog.None || s.Auth != catalog.False || s.DBSetup != catalog.None {
		t.Errorf("got orm=%s auth=%s setup=%s", s.ORM, s.Auth, s.DBSetup)
	}
	cmd := Command(s)
	if !strings.Contains(cmd, "--database none") || !strings.Contains(cmd, "--no-auth") {
		t.Errorf("command = %q", cmd)
	}
}

func TestScenario_TursoOnPostgres(t *testing.T) {
	s := mustApply(Default(), Edit{Category: catalog.Database, Op: OpSet, Value: catalog.Postgres})
	raw, r := Apply(s, Edit{Category: catalog.DBSetup, Op: OpSet, Value: catalog.Turso})
	if !r.Allowed {
		t.Fatalf("edit rejected: %s", r.Reason)
	}

	res, diags := Evaluate(raw)

	if res.State.Database != catalog.SQLite || res.State.ORM != catalog.Drizzle {
		t.Errorf("got %s/%s, want sqlite/drizzle", res.State.Database, res.State.ORM)
	}
	for _, c := range []catalog.Category{catalog.Database, catalog.ORM, catalog.DBSetup} {
		if !diags[c].HasIssue {
			t.Errorf("expected %s to be flagged", c)
		}
	}
	if diags[catalog.Frontend].HasIssue || len(diags[catalog.Frontend].Notes) != 0 {
		t.Errorf("frontend should be clean, got %+v", diags[catalog.Frontend])
	}
}

func TestScenario_HuskyAddsBiome(t *testing.T) {
	s := mustApply(Default(), Edit{Category: catalog.Addons, Op: OpAdd, Value: catalog.Husky})

	if !slices.Contains(s.Addons, catalog.Biome) || !slices.Contains(s.Addons, catalog.Husky) {
		t.Errorf("Addons = %v", s.Addons)
	}
}

func TestScenario_FrontendNoneIsReplaced(t *testing.T) {
	s := mustApply(Default(), Edit{Category: catalog.Frontend, Op: OpSet, Value: catalog.None})
	if !slices.Equal(s.Frontend, []string{catalog.None}) {
		t.Fatalf("Frontend = %v", s.Frontend)
	}

	s = mustApply(s, Edit{Category: catalog.Frontend, Op: OpAdd, Value: catalog.TanStackRouter})

	if !slices.Equal(s.Frontend, []string{catalog.TanStackRouter}) {
		t.Errorf("Frontend = %v, want [tanstack-router]", s.Frontend)
	}
	if v := violatedInvariants(s); len(v) != 0 {
		t.Errorf("state violates %v", v)
	}
}

func TestScenario_AIExampleOnElysia(t *testing.T) {
	s := mustApply(Default(), Edit{Category: catalog.Backend, Op: OpSet, Value: catalog.Elysia})

	if r := CanSelect(s, catalog.Examples, catalog.AI); r.Allowed {
		t.Fatal("expected ai example to be disabled")
	}

	for _, e := range []Edit{
		{Category: catalog.Examples, Op: OpAdd, Value: catalog.AI},
		{Category: catalog.Examples, Op: OpSet, Value: catalog.AI},
		{Category: catalog.Examples, Op: OpSet, Value: "todo,ai"},
	} {
		next, r := Apply(s, e)
		if r.Allowed {
			t.Errorf("%s: expected Apply to reject the edit", e)
		}
		if !next.Equal(s) {
			t.Errorf("%s: state changed: %+v", e, next)
		}
	}
}
