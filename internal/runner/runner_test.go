package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/typeroute/typeroute/internal/discover"
)

func TestRemoveMain(t *testing.T) {
	dir := t.TempDir()
	src := `package main

import "fmt"

func main() {
	fmt.Println("hi")
}

func keepMe() {}
`
	path := filepath.Join(dir, "main.go")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	hasMain, modified, err := removeMain(path)
	if err != nil {
		t.Fatal(err)
	}
	if !hasMain {
		t.Fatal("main() not detected")
	}
	out := string(modified)
	if strings.Contains(out, "func main()") {
		t.Error("main() not removed")
	}
	if !strings.Contains(out, "func keepMe()") {
		t.Error("other declarations must survive")
	}
}

func TestRemoveMainNoMain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.go")
	if err := os.WriteFile(path, []byte("package lib\n\nfunc Helper() {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	hasMain, modified, err := removeMain(path)
	if err != nil {
		t.Fatal(err)
	}
	if hasMain || modified != nil {
		t.Errorf("got (%v, %q), want no main", hasMain, modified)
	}
}

func TestGenerateRunnerApp(t *testing.T) {
	src, err := generateRunner(Options{
		Export: discover.Export{Name: "SetupApp", Type: discover.ExportTypeApp},
		OutDir: "/tmp/out",
	})
	if err != nil {
		t.Fatal(err)
	}

	out := string(src)
	if !strings.Contains(out, "typeroutegen.FromApp(SetupApp())") {
		t.Error("runner must call the export through FromApp")
	}
	if !strings.Contains(out, `g.LoadFile("typeroute.yaml")`) {
		t.Error("runner must load the project config file")
	}
	if !strings.Contains(out, `g.ToDir("/tmp/out")`) {
		t.Error("runner must generate into the output directory")
	}
}

func TestGenerateRunnerAppWithConfigFunc(t *testing.T) {
	src, err := generateRunner(Options{
		Export:     discover.Export{Name: "SetupApp", Type: discover.ExportTypeApp},
		OutDir:     "/tmp/out",
		ConfigFunc: "Configure",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(src), "g = Configure(g)") {
		t.Error("config function not wired into the runner")
	}
}

func TestGenerateRunnerNoConfigSuppressesConfigFunc(t *testing.T) {
	src, err := generateRunner(Options{
		Export:     discover.Export{Name: "SetupApp", Type: discover.ExportTypeApp},
		OutDir:     "/tmp/out",
		ConfigFunc: "Configure",
		NoConfig:   true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(src), "Configure(g)") {
		t.Error("--no-config must suppress the config function")
	}
}

func TestGenerateRunnerGeneratorExport(t *testing.T) {
	src, err := generateRunner(Options{
		Export: discover.Export{Name: "Gen", Type: discover.ExportTypeGenerator},
		OutDir: "/tmp/out",
	})
	if err != nil {
		t.Fatal(err)
	}
	out := string(src)
	if !strings.Contains(out, "g := Gen()") {
		t.Error("runner must call the generator export directly")
	}
	if strings.Contains(out, "FromApp") {
		t.Error("generator exports are already configured")
	}
}

func TestGenerateRunnerCheckMode(t *testing.T) {
	src, err := generateRunner(Options{
		Export: discover.Export{Name: "SetupApp", Type: discover.ExportTypeApp},
		OutDir: "/tmp/out",
		Check:  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	out := string(src)
	if !strings.Contains(out, `g.OutDir("/tmp/out").Generate(context.Background())`) {
		t.Error("check mode must regenerate against the same output directory")
	}
	if !strings.Contains(out, "is out of date") {
		t.Error("check mode must report stale output")
	}
	if strings.Contains(out, "g.ToDir(") {
		t.Error("check mode must not write files")
	}
}
