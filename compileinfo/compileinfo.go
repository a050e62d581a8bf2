// Package compileinfo reports the VCS state a genmapload tool was built from,
// so that a load recorded in MRK_Offset can be traced to a commit.
package compileinfo

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime/debug"
)

type BuildInfo struct {
	Tool      string
	Module    string
	GoVersion string
	Revision  string
	Time      string
	Dirty     bool
}

func (b BuildInfo) String() string {
	if b.Revision == "" {
		return fmt.Sprintf("%s (%s) built with %s from an unknown revision", b.Tool, b.Module, b.GoVersion)
	}

	dirty := ""
	if b.Dirty {
		dirty = " with uncommitted changes"
	}

	return fmt.Sprintf("%s (%s) built with %s at revision %s (%s)%s", b.Tool, b.Module, b.GoVersion, b.Revision, b.Time, dirty)
}

// Read extracts build metadata from the running binary. The zero value is
// returned when the binary carries none, as in tests.
func Read() BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return BuildInfo{}
	}

	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) BuildInfo {
	out := BuildInfo{
		Tool:      path.Base(info.Path),
		Module:    info.Main.Path,
		GoVersion: info.GoVersion,
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Revision = s.Value
		case "vcs.time":
			out.Time = s.Value
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}

	return out
}

func Fprint(w io.Writer) {
	fmt.Fprintln(w, Read())
}

func PrintToStdErr() {
	Fprint(os.Stderr)
}
