package mdllconfigs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/mdll/configs"
	"github.com/reusee/mdll/modes"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "mdll.cue")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigsLoader(t *testing.T) {
	path := writeConfig(t, `
output_suffix: ".out"
jobs: 3
`)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() ConfigPaths {
			return ConfigPaths{path}
		},
	).Call(func(
		loader configs.Loader,
		suffix OutputSuffix,
		jobs Jobs,
	) {
		paths, err := loader.Paths()
		if err != nil {
			t.Fatal(err)
		}
		if len(paths) != 1 || paths[0] != path {
			t.Fatalf("got %v", paths)
		}
		if suffix != ".out" {
			t.Fatalf("got %v", suffix)
		}
		if jobs != 3 {
			t.Fatalf("got %v", jobs)
		}
	})
}

func TestDefaults(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() ConfigPaths {
			return nil
		},
	).Call(func(
		suffix OutputSuffix,
		jobs Jobs,
	) {
		if suffix != DefaultOutputSuffix {
			t.Fatalf("got %v", suffix)
		}
		if jobs <= 0 {
			t.Fatalf("got %v", jobs)
		}
	})
}

func TestSchema(t *testing.T) {
	for _, src := range []string{
		`macro_scope: "global"`,
		`max_depth: 0`,
		`generic_name_format: "%s"`,
		`output_suffix: ""`,
		`jobs: 0`,
		`include_paths: "lib"`,
		`foo: 1`,
	} {
		loader := configs.NewLoader([]string{writeConfig(t, src)}, Schema)
		if _, err := loader.Paths(); err == nil {
			t.Fatalf("%s: should error", src)
		}
	}

	loader := configs.NewLoader([]string{writeConfig(t, `
macro_scope: "propagate"
max_depth: 10
generic_name_format: "__%s%d"
`)}, Schema)
	if _, err := loader.Paths(); err != nil {
		t.Fatal(err)
	}
}

func TestConfigPathsInTestMode(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		paths ConfigPaths,
	) {
		// no mdll.cue in the package directory, user and system dirs are skipped
		if len(paths) != 0 {
			t.Fatalf("got %v", paths)
		}
	})
}

func TestIncludePaths(t *testing.T) {
	local := writeConfig(t, `include_paths: ["lib", "vendor/lib"]`)
	global := writeConfig(t, `include_paths: ["/usr/share/mdll"]`)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() ConfigPaths {
			return ConfigPaths{local, global}
		},
	).Call(func(
		paths IncludePaths,
	) {
		if strings.Join(paths, ",") != "lib,vendor/lib,/usr/share/mdll" {
			t.Fatalf("got %v", paths)
		}
	})
}
