// Package buildinfo holds the version strings set at link time:
//
//	-ldflags "-X dotmatrix/internal/buildinfo.Version=v1.2.0 -X dotmatrix/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for the window title and the
// boot log.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Long returns every known field, e.g. "v1.2.0 (3f2a9c1, 2026-10-01)".
func Long() string {
	s := Version
	if s == "" {
		s = "dev"
	}
	extra := ""
	if Commit != "" && Commit != "unknown" {
		extra = Commit
	}
	if Date != "" && Date != "unknown" {
		if extra != "" {
			extra += ", "
		}
		extra += Date
	}
	if extra == "" {
		return s
	}
	return s + " (" + extra + ")"
}
