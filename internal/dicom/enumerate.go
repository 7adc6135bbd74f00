package dicom

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mrsinham/dicomloop/internal/logger"
)

// DefaultExtension is the suffix of files picked up by LoadFrames.
const DefaultExtension = ".dcm"

// Frame is one loaded file of the series.
type Frame struct {
	Dataset  Dataset
	Filename string
}

// LoadOptions tunes LoadFrames.
type LoadOptions struct {
	Extension        string                               // File suffix to keep (default ".dcm")
	ProgressCallback func(current, total int, path string) // Called after each file, parsed or skipped
}

// ExtractNumber returns the sort key of a series file name: the integer between
// the first '-' and the following '.', so "1-07.dcm" gives 7. Names without
// that shape give 0. Empty segments are ignored, "a--3.dcm" gives 3.
func ExtractNumber(filename string) int {
	parts := strings.FieldsFunc(filename, func(r rune) bool { return r == '-' })
	if len(parts) < 2 {
		return 0
	}
	head := strings.FieldsFunc(parts[1], func(r rune) bool { return r == '.' })
	if len(head) == 0 {
		return 0
	}
	n, err := strconv.Atoi(head[0])
	if err != nil {
		return 0
	}
	return n
}

// SortFilenames sorts names in place by ExtractNumber. Equal keys keep their
// input order.
func SortFilenames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return ExtractNumber(names[i]) < ExtractNumber(names[j])
	})
}

// ListSeriesFiles returns the sorted names of the regular files in dir ending in ext.
func ListSeriesFiles(dir, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		names = append(names, entry.Name())
	}

	SortFilenames(names)
	return names, nil
}

// LoadFrames lists dir, sorts the series files and parses each of them.
// Files that fail to parse, or parse to an empty dataset, are logged and
// skipped. A directory that cannot be read returns an empty list and an error.
func LoadFrames(dir string, opts LoadOptions) ([]Frame, error) {
	names, err := ListSeriesFiles(dir, opts.Extension)
	if err != nil {
		logger.Log.WithError(err).WithField("dir", dir).Error("Error reading directory")
		return []Frame{}, err
	}

	frames := make([]Frame, 0, len(names))
	for i, name := range names {
		path := filepath.Join(dir, name)

		ds, err := Open(path)
		if err != nil {
			logger.Log.WithError(err).WithField("file", name).Warn("Skipping unreadable DICOM file")
		} else {
			frames = append(frames, Frame{Dataset: ds, Filename: name})
		}

		if opts.ProgressCallback != nil {
			opts.ProgressCallback(i+1, len(names), path)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"dir":     dir,
		"found":   len(names),
		"loaded":  len(frames),
		"skipped": len(names) - len(frames),
	}).Debug("Series loaded")

	return frames, nil
}
