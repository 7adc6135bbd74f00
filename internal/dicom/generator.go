package dicom

import (
	"fmt"
	"hash/fnv"
	randv2 "math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/mrsinham/dicomloop/internal/dicom/edgecases"
	dcmimage "github.com/mrsinham/dicomloop/internal/image"
	"github.com/mrsinham/dicomloop/internal/logger"
	"github.com/mrsinham/dicomloop/internal/util"
)

const (
	DefaultLabel     = "1"
	DefaultModality  = "MR"
	DefaultImageSize = 128

	explicitVRLittleEndian = "1.2.840.10008.1.2.1"
	mrImageStorage         = "1.2.840.10008.5.1.4.1.1.4"
)

// referenceDate anchors generated study dates so a seed always gives the same series.
var referenceDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// mustNewElement creates a DICOM element and panics on error.
// Only used for elements whose values are built here.
func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return elem
}

// writeDatasetToFile writes a DICOM dataset to a file
func writeDatasetToFile(filename string, ds dicom.Dataset, opts ...dicom.WriteOption) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return dicom.Write(f, ds, opts...)
}

// GeneratorOptions configures GenerateSeries.
type GeneratorOptions struct {
	OutputDir string
	NumImages int
	Width     int    // Columns (default 128)
	Height    int    // Rows (default 128)
	Label     string // File names are "<Label>-NN<Extension>" (default "1")
	Extension string // Default ".dcm"
	Seed      int64  // 0 derives the seed from OutputDir
	Workers   int    // Number of parallel workers (0 = auto-detect based on CPU cores)

	// Metadata; empty values are generated
	PatientName string
	PatientSex  string
	Modality    string
	StudyDate   string

	// Edge case generation
	EdgeCaseConfig edgecases.Config

	// Output control
	Quiet            bool                     // Suppress progress output
	ProgressCallback func(current, total int) // Optional callback for progress updates
}

// GeneratedFile describes one written file.
type GeneratedFile struct {
	Path           string
	InstanceNumber int
	EdgeCase       edgecases.EdgeCaseType // Empty for a regular file
}

// imageTask contains all data needed to write a single file
type imageTask struct {
	index       int
	filePath    string
	width       int
	height      int
	pixelRows   int // Rows actually written, fewer than height for truncated frames
	textOverlay string
	pixelSeed   uint64
	metadata    []*dicom.Element
	edgeCase    edgecases.EdgeCaseType
}

// generateImageFromTask writes a single file from a pre-computed task
func generateImageFromTask(task imageTask) error {
	if task.edgeCase == edgecases.NotDICOM {
		rng := randv2.New(randv2.NewPCG(task.pixelSeed, task.pixelSeed))
		return os.WriteFile(task.filePath, edgecases.GarbageBytes(512, rng), 0644)
	}

	width, height := task.width, task.height
	pixels := dcmimage.GenerateSlice(width, height, task.pixelSeed)
	if pixels == nil {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if err := dcmimage.AddTextOverlay(pixels, width, height, task.textOverlay); err != nil {
		return fmt.Errorf("draw overlay: %w", err)
	}

	rows := task.pixelRows
	nativeFrame := frame.NewNativeFrame[uint16](16, rows, width, rows*width, 1)
	copy(nativeFrame.RawData, pixels[:rows*width])

	pixelDataInfo := dicom.PixelDataInfo{
		Frames: []*frame.Frame{
			{
				Encapsulated: false,
				NativeData:   nativeFrame,
			},
		},
	}

	elements := make([]*dicom.Element, len(task.metadata)+1)
	copy(elements, task.metadata)
	elements[len(task.metadata)] = mustNewElement(tag.PixelData, pixelDataInfo)

	return writeDatasetToFile(task.filePath, dicom.Dataset{Elements: elements})
}

// GenerateSeries writes a numbered demo series of 16-bit MONOCHROME2 frames,
// each stamped with "File X/Y". The output is fully determined by the seed.
func GenerateSeries(opts GeneratorOptions) ([]GeneratedFile, error) {
	if opts.NumImages <= 0 {
		return nil, fmt.Errorf("number of images must be > 0, got %d", opts.NumImages)
	}
	if opts.Width == 0 {
		opts.Width = DefaultImageSize
	}
	if opts.Height == 0 {
		opts.Height = DefaultImageSize
	}
	if opts.Width < 0 || opts.Height < 0 || opts.Width > 4096 || opts.Height > 4096 {
		return nil, fmt.Errorf("image size must be within 1-4096, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Label == "" {
		opts.Label = DefaultLabel
	}
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if opts.Modality == "" {
		opts.Modality = DefaultModality
	}
	if err := opts.EdgeCaseConfig.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	// Set seed for reproducibility
	seed := opts.Seed
	if seed == 0 {
		// Same directory = same series
		h := fnv.New64a()
		_, _ = h.Write([]byte(opts.OutputDir)) // hash.Write never returns an error
		seed = int64(h.Sum64())
	}
	rng := randv2.New(randv2.NewPCG(uint64(seed), uint64(seed)))

	if !opts.Quiet {
		fmt.Printf("Generating %d DICOM files (%dx%d) in %s\n", opts.NumImages, opts.Width, opts.Height, opts.OutputDir)
		fmt.Printf("Using seed: %d\n", seed)
	}

	sex := opts.PatientSex
	if sex == "" {
		sex = []string{"M", "F"}[rng.IntN(2)]
	}
	patientName := opts.PatientName
	if patientName == "" {
		patientName = util.GeneratePatientName(sex, rng)
	}
	studyDate := opts.StudyDate
	if studyDate == "" {
		studyDate = util.GenerateStudyDate(referenceDate, rng)
	}
	studyUID := util.GenerateDeterministicUID(fmt.Sprintf("%s_study_%d", opts.OutputDir, seed))
	seriesUID := util.GenerateDeterministicUID(fmt.Sprintf("%s_series_%d", opts.OutputDir, seed))

	// Phase 1: plan every file so the random draws do not depend on scheduling
	app := edgecases.NewApplicator(opts.EdgeCaseConfig, rng)
	digits := max(2, len(fmt.Sprint(opts.NumImages)))
	tasks := make([]imageTask, opts.NumImages)
	for i := range tasks {
		instance := i + 1
		kind := app.Next()

		name := fmt.Sprintf("%s-%0*d%s", opts.Label, digits, instance, opts.Extension)
		name = app.ApplyToFilename(kind, instance, opts.Extension, name)

		rows, cols := app.ApplyToGeometry(kind, opts.Height, opts.Width)
		omit := app.GetTagsToOmit(kind)
		values := map[string]string{
			"PatientName": app.ApplyToPatientName(kind, sex, patientName),
			"Modality":    opts.Modality,
			"StudyDate":   studyDate,
		}

		metadata := []*dicom.Element{
			mustNewElement(tag.TransferSyntaxUID, []string{explicitVRLittleEndian}),
			mustNewElement(tag.SOPClassUID, []string{mrImageStorage}),
			mustNewElement(tag.SOPInstanceUID, []string{util.GenerateDeterministicUID(fmt.Sprintf("%s_%d_%d", opts.OutputDir, seed, instance))}),
			mustNewElement(tag.StudyInstanceUID, []string{studyUID}),
			mustNewElement(tag.SeriesInstanceUID, []string{seriesUID}),
			mustNewElement(tag.InstanceNumber, []string{fmt.Sprint(instance)}),
			mustNewElement(tag.PatientSex, []string{sex}),
		}
		if kind == edgecases.SpecialChars {
			metadata = append(metadata, mustNewElement(tag.SpecificCharacterSet, []string{edgecases.UTF8CharacterSet}))
		}
		for _, field := range []struct {
			name string
			t    tag.Tag
		}{
			{"PatientName", tag.PatientName},
			{"Modality", tag.Modality},
			{"StudyDate", tag.StudyDate},
		} {
			if slices.Contains(omit, field.name) {
				continue
			}
			metadata = append(metadata, mustNewElement(field.t, []string{values[field.name]}))
		}
		metadata = append(metadata,
			mustNewElement(tag.Rows, []int{rows}),
			mustNewElement(tag.Columns, []int{cols}),
			mustNewElement(tag.BitsAllocated, []int{16}),
			mustNewElement(tag.BitsStored, []int{12}),
			mustNewElement(tag.HighBit, []int{11}),
			mustNewElement(tag.PixelRepresentation, []int{0}),
			mustNewElement(tag.SamplesPerPixel, []int{1}),
			mustNewElement(tag.PhotometricInterpretation, []string{"MONOCHROME2"}),
		)

		tasks[i] = imageTask{
			index:       i,
			filePath:    filepath.Join(opts.OutputDir, name),
			width:       opts.Width,
			height:      opts.Height,
			pixelRows:   app.ApplyToPixelRows(kind, opts.Height),
			textOverlay: fmt.Sprintf("File %d/%d", instance, opts.NumImages),
			pixelSeed:   rng.Uint64(),
			metadata:    metadata,
			edgeCase:    kind,
		}
		if kind != "" {
			logger.Log.WithField("file", name).WithField("edge_case", kind).Debug("Planned edge case")
		}
	}

	// Phase 2: process tasks in parallel
	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	// Don't use more workers than tasks
	if numWorkers > len(tasks) {
		numWorkers = len(tasks)
	}

	taskChan := make(chan imageTask, len(tasks))
	resultChan := make(chan struct {
		index int
		err   error
	}, len(tasks))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChan {
				err := generateImageFromTask(task)
				resultChan <- struct {
					index int
					err   error
				}{task.index, err}
			}
		}()
	}

	for _, task := range tasks {
		taskChan <- task
	}
	close(taskChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	completed := 0
	var firstErr error
	for result := range resultChan {
		if result.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("generate image %d: %w", result.index+1, result.err)
		}
		completed++
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(completed, len(tasks))
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}

	generated := make([]GeneratedFile, len(tasks))
	for i, task := range tasks {
		generated[i] = GeneratedFile{
			Path:           task.filePath,
			InstanceNumber: task.index + 1,
			EdgeCase:       task.edgeCase,
		}
	}

	if !opts.Quiet {
		fmt.Printf("✓ %d DICOM files created in: %s/\n", len(generated), opts.OutputDir)
	}

	return generated, nil
}
