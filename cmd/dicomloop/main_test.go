package main

import (
	"bytes"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mrsinham/dicomloop/internal/dicom"
	"github.com/mrsinham/dicomloop/internal/dicom/edgecases"
)

func series(t *testing.T, n int, ec edgecases.Config) string {
	t.Helper()
	dir := t.TempDir()
	_, err := dicom.GenerateSeries(dicom.GeneratorOptions{
		OutputDir:      dir,
		NumImages:      n,
		Width:          16,
		Height:         16,
		Seed:           42,
		Workers:        2,
		EdgeCaseConfig: ec,
		Quiet:          true,
	})
	if err != nil {
		t.Fatalf("GenerateSeries() error = %v", err)
	}
	return dir
}

func TestExportFrames(t *testing.T) {
	frames, err := dicom.LoadFrames(series(t, 3, edgecases.Config{}), dicom.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadFrames() error = %v", err)
	}

	out := filepath.Join(t.TempDir(), "export")
	written, err := exportFrames(frames, out, true, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("exportFrames() error = %v", err)
	}
	if written != 3 {
		t.Errorf("written = %d, want 3", written)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"frame-001.png", "frame-002.png", "frame-003.png", "loop.gif"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("exported files mismatch (-want +got):\n%s", diff)
	}

	f, err := os.Open(filepath.Join(out, "loop.gif"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode loop.gif: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Errorf("gif frames = %d, want 3", len(anim.Image))
	}
	if anim.Delay[0] != 10 {
		t.Errorf("gif delay = %d, want 10", anim.Delay[0])
	}
	// Left and right halves side by side
	if got := anim.Config.Width; got != 32 {
		t.Errorf("gif width = %d, want 32", got)
	}
}

func TestExportFrames_SkipsBrokenFrames(t *testing.T) {
	dir := series(t, 4, edgecases.Config{Percentage: 100, Types: []edgecases.EdgeCaseType{edgecases.ZeroGeometry}})
	frames, err := dicom.LoadFrames(dir, dicom.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadFrames() error = %v", err)
	}

	out := t.TempDir()
	written, err := exportFrames(frames, out, true, time.Second)
	if err != nil {
		t.Fatalf("exportFrames() error = %v", err)
	}
	if written != 0 {
		t.Errorf("written = %d, want 0", written)
	}
	if _, err := os.Stat(filepath.Join(out, "loop.gif")); !os.IsNotExist(err) {
		t.Errorf("loop.gif should not exist without drawable frames, stat err = %v", err)
	}
}

func TestPrintInfo(t *testing.T) {
	dir := series(t, 2, edgecases.Config{})
	frames, err := dicom.LoadFrames(dir, dicom.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadFrames() error = %v", err)
	}

	var buf bytes.Buffer
	printInfo(&buf, frames)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	for i, want := range []string{"1-01.dcm", "1-02.dcm"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want file %s", i, lines[i], want)
		}
		if !strings.Contains(lines[i], "16x16") || !strings.Contains(lines[i], "512") || !strings.HasSuffix(lines[i], "ok") {
			t.Errorf("line %d = %q, want geometry, size and ok status", i, lines[i])
		}
	}
}

func TestPrintInfo_Empty(t *testing.T) {
	var buf bytes.Buffer
	printInfo(&buf, nil)
	if got := buf.String(); got != "No DICOM files found\n" {
		t.Errorf("printInfo(nil) = %q", got)
	}
}

func TestGenerateCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "series")
	cfg := filepath.Join(t.TempDir(), "missing.yaml")

	err := app.Run([]string{"dicomloop", "--config", cfg, "generate", "--out", out, "-n", "3", "--width", "8", "--height", "8", "--seed", "7"})
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	names, err := dicom.ListSeriesFiles(out, ".dcm")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"1-01.dcm", "1-02.dcm", "1-03.dcm"}, names); diff != "" {
		t.Errorf("generated files mismatch (-want +got):\n%s", diff)
	}
}

func TestInitConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "dicomloop.yaml")

	if err := app.Run([]string{"dicomloop", "--config", path, "--fps", "12", "--dir", "/data/series", "init-config"}); err != nil {
		t.Fatalf("init-config error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"directory: /data/series", "fps: 12"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("config file missing %q:\n%s", want, data)
		}
	}
}

func TestInvalidFPSFlag(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "missing.yaml")
	if err := app.Run([]string{"dicomloop", "--config", cfg, "--fps", "500", "info", t.TempDir()}); err == nil {
		t.Error("expected an error for --fps 500")
	}
}
