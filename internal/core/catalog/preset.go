package catalog

import "slices"

// Preset is a named multi-field bundle. Fields are keyed by category name;
// set-valued categories hold a comma-separated list ("" for the empty set).
type Preset struct {
	Name        string
	Description string
	Fields      map[string]string
}

var presets = []Preset{
	{
		Name:        "default",
		Description: "The stock configuration",
		Fields: map[string]string{
			string(Frontend): TanStackRouter,
			string(Runtime):  Bun,
			string(Backend):  Hono,
			string(API):      TRPC,
			string(Database): SQLite,
			string(ORM):      Drizzle,
			string(DBSetup):  None,
			string(Auth):     True,
			string(Addons):   Turborepo,
			string(Examples): "",
		},
	},
	{
		Name:        "minimal",
		Description: "API-only backend without database, auth or addons",
		Fields: map[string]string{
			string(Frontend): None,
			string(API):      None,
			string(Database): None,
			string(Addons):   "",
			string(Examples): "",
		},
	},
	{
		Name:        "mobile",
		Description: "Web and React Native frontends sharing a tRPC API",
		Fields: map[string]string{
			string(Frontend): TanStackRouter + "," + Native,
			string(API):      TRPC,
		},
	},
	{
		Name:        "fullstack-postgres",
		Description: "Serverless Postgres with Prisma and the todo example",
		Fields: map[string]string{
			string(Database): Postgres,
			string(ORM):      Prisma,
			string(DBSetup):  Neon,
			string(Examples): Todo,
		},
	},
	{
		Name:        "edge-sqlite",
		Description: "Turso-hosted SQLite with Drizzle",
		Fields: map[string]string{
			string(DBSetup): Turso,
		},
	},
}

// Presets returns the built-in presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		out[i] = p.clone()
	}
	return out
}

// LookupPreset finds a built-in preset by name.
func LookupPreset(name string) (Preset, bool) {
	i := slices.IndexFunc(presets, func(p Preset) bool { return p.Name == name })
	if i < 0 {
		return Preset{}, false
	}
	return presets[i].clone(), true
}

func (p Preset) clone() Preset {
	fields := make(map[string]string, len(p.Fields))
	for k, v := range p.Fields {
		fields[k] = v
	}
	p.Fields = fields
	return p
}
