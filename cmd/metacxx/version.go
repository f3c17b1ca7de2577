package main

import (
	_ "embed"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version for "go install ...@version" builds
// and "devel-<VERSION>[+<revision>]" otherwise.
func Version() string {
	base := strings.TrimSpace(embeddedVersion)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	if rev := setting(info, "vcs.revision"); len(rev) >= 7 {
		version := "devel-" + base + "+" + rev[:7]
		if setting(info, "vcs.modified") == "true" {
			version += "-dirty"
		}
		return version
	}
	return "devel-" + base
}

func setting(info *debug.BuildInfo, key string) string {
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

type VersionCmd struct {
	Verbose bool `help:"Also print the Go toolchain and platform." short:"v"`
}

func (c *VersionCmd) Run() error {
	if !c.Verbose {
		fmt.Println(Version())
		return nil
	}
	fmt.Printf("metacxx %s (%s, %s/%s)\n", Version(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}
