package dicom

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
}

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"1-01.dcm", 1},
		{"1-10.dcm", 10},
		{"series-007.dcm", 7},
		{"a-b-3.dcm", 0},
		{"a--3.dcm", 3},
		{"scout.dcm", 0},
		{"1-.dcm", 0},
		{"-5.dcm", 0},
		{"1-5", 5},
		{"1-5.2.dcm", 5},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractNumber(tt.name); got != tt.want {
				t.Errorf("ExtractNumber(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestSortFilenames(t *testing.T) {
	names := []string{"1-10.dcm", "1-2.dcm", "scout.dcm", "1-1.dcm", "b-2.dcm"}
	SortFilenames(names)

	want := []string{"scout.dcm", "1-1.dcm", "1-2.dcm", "b-2.dcm", "1-10.dcm"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("SortFilenames mismatch (-want +got):\n%s", diff)
	}
}

func TestListSeriesFiles_NumericOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "1-10.dcm", "1-2.dcm", "1-1.dcm")

	names, err := ListSeriesFiles(dir, "")
	if err != nil {
		t.Fatalf("ListSeriesFiles failed: %v", err)
	}
	want := []string{"1-1.dcm", "1-2.dcm", "1-10.dcm"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Order mismatch (-want +got):\n%s", diff)
	}
}

func TestListSeriesFiles_ExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "1-1.dcm", "1-2.txt", "notes.md", "1-3.DCM", "1-4.dcm.bak")
	if err := os.Mkdir(filepath.Join(dir, "1-5.dcm"), 0755); err != nil {
		t.Fatal(err)
	}

	names, err := ListSeriesFiles(dir, ".dcm")
	if err != nil {
		t.Fatalf("ListSeriesFiles failed: %v", err)
	}
	if diff := cmp.Diff([]string{"1-1.dcm"}, names); diff != "" {
		t.Errorf("Filter mismatch (-want +got):\n%s", diff)
	}

	names, err = ListSeriesFiles(dir, ".txt")
	if err != nil {
		t.Fatalf("ListSeriesFiles failed: %v", err)
	}
	if diff := cmp.Diff([]string{"1-2.txt"}, names); diff != "" {
		t.Errorf("Custom extension mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrames_MissingDirectory(t *testing.T) {
	frames, err := LoadFrames(filepath.Join(t.TempDir(), "nope"), LoadOptions{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}
	if frames == nil || len(frames) != 0 {
		t.Errorf("Expected an empty non-nil list, got %v", frames)
	}
}

func TestLoadFrames_SkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := GenerateSeries(GeneratorOptions{
		OutputDir: dir,
		NumImages: 3,
		Width:     8,
		Height:    8,
		Seed:      42,
		Quiet:     true,
	}); err != nil {
		t.Fatalf("GenerateSeries failed: %v", err)
	}
	// Shares sort key 1 with the first frame.
	if err := os.WriteFile(filepath.Join(dir, "1-01.5.dcm"), []byte("not a dicom file"), 0644); err != nil {
		t.Fatal(err)
	}
	touch(t, dir, "1-99.dcm")

	var calls int
	frames, err := LoadFrames(dir, LoadOptions{
		ProgressCallback: func(current, total int, path string) {
			calls++
			if total != 5 {
				t.Errorf("Progress total = %d, want 5", total)
			}
		},
	})
	if err != nil {
		t.Fatalf("LoadFrames failed: %v", err)
	}
	if calls != 5 {
		t.Errorf("Progress called %d times, want 5", calls)
	}

	var got []string
	for _, f := range frames {
		got = append(got, f.Filename)
	}
	want := []string{"1-01.dcm", "1-02.dcm", "1-03.dcm"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Loaded frames mismatch (-want +got):\n%s", diff)
	}
}
