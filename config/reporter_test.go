package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func readReport(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}

	logFile := filepath.Join(dir, "run.log")
	if err := os.WriteFile(logFile, []byte("log line\n"), 0644); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(src, []byte(`{"type":"root"}`), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("final.log", logFile)
	r.StoreData("config.yaml", []byte("version: 1\n"))
	r.StoreData("config.yaml", []byte("version: 1\n"))
	if err := r.StoreCopy("source/doc.json", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// changes after copy must not show up in the report
	if err := os.WriteFile(src, []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readReport(t, conf.Destination)
	if files["final.log"] != "log line\n" {
		t.Errorf("final.log = %q", files["final.log"])
	}
	if files["source/doc.json"] != `{"type":"root"}` {
		t.Errorf("copied source = %q", files["source/doc.json"])
	}
	configs := 0
	for name := range files {
		if strings.HasPrefix(name, "config.yaml") {
			configs++
		}
	}
	if configs != 2 {
		t.Errorf("found %d config entries, want 2", configs)
	}
	if !strings.Contains(files["MANIFEST"], "final.log") {
		t.Errorf("MANIFEST does not list final.log:\n%s", files["MANIFEST"])
	}
	if len(r.tmp) != 0 {
		t.Errorf("temporary copies not removed: %v", r.tmp)
	}
}

func TestReportConcurrent(t *testing.T) {
	conf := ReporterConfig{Destination: filepath.Join(t.TempDir(), "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.StoreData("dump.txt", []byte("x"))
		}()
	}
	wg.Wait()
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// MANIFEST plus every dump
	if got := len(readReport(t, conf.Destination)); got < 2 {
		t.Errorf("report has %d entries", got)
	}
}

func TestReportNil(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("a", nil)
	if err := r.StoreCopy("a", "b"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q", r.Name())
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportNilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
