package catalog

import (
	"slices"
	"testing"
)

func TestDefaults(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{Runtime, Bun},
		{Backend, Hono},
		{API, TRPC},
		{Database, SQLite},
		{ORM, Drizzle},
		{DBSetup, None},
		{Auth, True},
		{PackageManager, Bun},
		{Git, True},
		{Install, True},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			if got := Default(tt.category); got != tt.want {
				t.Errorf("Default(%s) = %q, want %q", tt.category, got, tt.want)
			}
		})
	}
}

func TestDefaultSets(t *testing.T) {
	if got := DefaultSet(Frontend); !slices.Equal(got, []string{TanStackRouter}) {
		t.Errorf("DefaultSet(frontend) = %v", got)
	}
	if got := DefaultSet(Addons); !slices.Equal(got, []string{Turborepo}) {
		t.Errorf("DefaultSet(addons) = %v", got)
	}
	if got := DefaultSet(Examples); len(got) != 0 {
		t.Errorf("DefaultSet(examples) = %v, want empty", got)
	}
}

func TestEverySingleCategoryHasExactlyOneDefault(t *testing.T) {
	for _, c := range Categories() {
		if IsMulti(c) {
			continue
		}
		count := 0
		for _, o := range Get(c) {
			if o.Default {
				count++
			}
		}
		if count != 1 {
			t.Errorf("%s has %d defaults, want 1", c, count)
		}
	}
}

func TestOptionIDsAreUniquePerCategory(t *testing.T) {
	for _, c := range Categories() {
		seen := map[string]bool{}
		for _, o := range Get(c) {
			if seen[o.ID] {
				t.Errorf("%s: duplicate option %q", c, o.ID)
			}
			seen[o.ID] = true
			if o.Name == "" {
				t.Errorf("%s/%s: missing name", c, o.ID)
			}
		}
	}
}

func TestGetReturnsCopy(t *testing.T) {
	opts := Get(Database)
	opts[0].ID = "mutated"

	if Get(Database)[0].ID != SQLite {
		t.Error("catalog was mutated through Get")
	}
}

func TestFrontendClassification(t *testing.T) {
	if !IsWebFrontend(Next) || IsWebFrontend(Native) || IsWebFrontend(None) {
		t.Error("web frontend classification is wrong")
	}
	if !IsPWAFrontend(ReactRouter) || IsPWAFrontend(Next) {
		t.Error("pwa frontend classification is wrong")
	}
	if !IsNativeFrontend(Native) || IsNativeFrontend(TanStackStart) {
		t.Error("native frontend classification is wrong")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input  string
		want   Category
		wantOK bool
	}{
		{"database", Database, true},
		{"db-setup", DBSetup, true},
		{"DB_SETUP", DBSetup, true},
		{"dbSetup", DBSetup, true},
		{"package-manager", PackageManager, true},
		{"backendFramework", Backend, true},
		{"name", ProjectName, true},
		{"project-name", ProjectName, true},
		{"colour", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseCategory(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPresetsOnlyReferenceCatalogOptions(t *testing.T) {
	for _, p := range Presets() {
		for key := range p.Fields {
			c, ok := ParseCategory(key)
			if !ok || c == ProjectName {
				t.Errorf("preset %s: unknown category %q", p.Name, key)
			}
		}
	}
	if _, ok := LookupPreset("edge-sqlite"); !ok {
		t.Error("edge-sqlite preset missing")
	}
	if _, ok := LookupPreset("nope"); ok {
		t.Error("unexpected preset found")
	}
}
