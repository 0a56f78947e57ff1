package stack

import (
	"strings"

	"github.com/example/stackarch/internal/core/catalog"
)

// DefaultLauncherPackage is the scaffolding package the command invokes.
const DefaultLauncherPackage = "create-better-t-stack@latest"

// flagSpec maps a category to its command-line flag. Negatable flags only ever
// appear as --no-<name> when the value is "false".
type flagSpec struct {
	category  catalog.Category
	flag      string
	negatable bool
}

var commandFlags = []flagSpec{
	{category: catalog.Frontend, flag: "frontend"},
	{category: catalog.Database, flag: "database"},
	{category: catalog.ORM, flag: "orm"},
	{category: catalog.Auth, flag: "auth", negatable: true},
	{category: catalog.DBSetup, flag: "db-setup"},
	{category: catalog.Backend, flag: "backend"},
	{category: catalog.Runtime, flag: "runtime"},
	{category: catalog.API, flag: "api"},
	{category: catalog.PackageManager, flag: "package-manager"},
	{category: catalog.Git, flag: "git", negatable: true},
	{category: catalog.Install, flag: "install", negatable: true},
	{category: catalog.Addons, flag: "addons"},
	{category: catalog.Examples, flag: "examples"},
}

// Command serializes a normalized state into the minimal invocation that
// reproduces it: only values that differ from the catalog default are emitted.
func Command(s State) string {
	return CommandWith(s, DefaultLauncherPackage)
}

// CommandWith is Command with an explicit launcher package.
func CommandWith(s State, launcherPackage string) string {
	parts := []string{Launcher(s.PackageManager, launcherPackage), projectArg(s.ProjectName), "--yes"}
	return strings.Join(append(parts, Flags(s)...), " ")
}

// Flags returns the non-default flags of s in their fixed order.
func Flags(s State) []string {
	var out []string
	for _, f := range commandFlags {
		if catalog.IsMulti(f.category) {
			ids := canonicalSet(f.category, s.Set(f.category))
			if sameSet(ids, catalog.DefaultSet(f.category)) {
				continue
			}
			if len(ids) == 0 {
				ids = []string{catalog.None}
			}
			out = append(out, "--"+f.flag+" "+strings.Join(ids, " "))
			continue
		}

		value := s.Value(f.category)
		if value == catalog.Default(f.category) {
			continue
		}
		if f.negatable {
			if value == catalog.False {
				out = append(out, "--no-"+f.flag)
			}
			continue
		}
		out = append(out, "--"+f.flag+" "+value)
	}
	return out
}

// Launcher returns the package-manager specific launcher for pkg.
func Launcher(packageManager, pkg string) string {
	if pkg == "" {
		pkg = DefaultLauncherPackage
	}
	short, isCreate := strings.CutPrefix(pkg, "create-")
	switch packageManager {
	case catalog.PNPM:
		if isCreate {
			return "pnpm create " + short
		}
		return "pnpm dlx " + pkg
	case catalog.Bun:
		if isCreate {
			return "bun create " + short
		}
		return "bunx " + pkg
	default:
		return "npx " + pkg
	}
}

func projectArg(name string) string {
	if strings.TrimSpace(name) == "" {
		return catalog.DefaultProjectName
	}
	if strings.ContainsAny(name, " \t") {
		return `"` + name + `"`
	}
	return name
}
