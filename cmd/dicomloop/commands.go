package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli"

	"github.com/mrsinham/dicomloop/cmd/dicomloop/viewer"
	"github.com/mrsinham/dicomloop/internal/config"
	"github.com/mrsinham/dicomloop/internal/dicom"
	"github.com/mrsinham/dicomloop/internal/dicom/edgecases"
	dcmimage "github.com/mrsinham/dicomloop/internal/image"
	"github.com/mrsinham/dicomloop/internal/logger"
	"github.com/mrsinham/dicomloop/internal/playback"
	"github.com/mrsinham/dicomloop/internal/util"
)

// loadConfig reads --config and applies the global flags on top of it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.GlobalString("config"))
	if err != nil {
		return nil, err
	}
	if c.GlobalIsSet("dir") {
		cfg.Directory = c.GlobalString("dir")
	}
	if c.GlobalIsSet("ext") {
		cfg.Extension = c.GlobalString("ext")
	}
	if c.GlobalIsSet("fps") {
		cfg.FPS = c.GlobalInt("fps")
	}
	if c.GlobalIsSet("log-level") {
		cfg.Log.Level = c.GlobalString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// seriesDir prefers the positional argument over the configured directory.
func seriesDir(c *cli.Context, cfg *config.Config) string {
	if dir := c.Args().Get(0); dir != "" {
		return dir
	}
	return cfg.Directory
}

func progressCreate(max int, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// loadWithProgress scans dir and draws a bar while the files are parsed.
func loadWithProgress(dir, ext string) ([]dicom.Frame, error) {
	var bar *progressbar.ProgressBar
	frames, err := dicom.LoadFrames(dir, dicom.LoadOptions{
		Extension: ext,
		ProgressCallback: func(current, total int, path string) {
			if bar == nil {
				bar = progressCreate(total, "Loading")
			}
			_ = bar.Set(current)
		},
	})
	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}
	return frames, err
}

func viewAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	names := append([]string{}, cfg.ExtraFields...)
	names = append(names, c.StringSlice("field")...)
	extra, err := util.ResolveTags(names)
	if err != nil {
		return fmt.Errorf("extra fields: %w", err)
	}

	dir := seriesDir(c, cfg)
	if dir == "" {
		dir, err = viewer.PromptDirectory(".")
		if err != nil {
			return err
		}
	}

	// The terminal belongs to the viewer until it quits
	closer, err := logger.ToFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	return viewer.Run(viewer.Options{
		Dir:         dir,
		Extension:   cfg.Extension,
		FPS:         cfg.FPS,
		ExtraFields: extra,
		ShowStats:   cfg.ShowStats || c.Bool("stats"),
	})
}

func exportAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	dir := seriesDir(c, cfg)
	if dir == "" {
		return fmt.Errorf("directory is required")
	}
	out := cfg.Export.OutputDir
	if c.IsSet("out") {
		out = c.String("out")
	}

	frames, err := loadWithProgress(dir, cfg.Extension)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no DICOM files found in %s", dir)
	}

	start := time.Now()
	written, err := exportFrames(frames, out, cfg.Export.GIF && !c.Bool("no-gif"), cfg.Interval())
	if err != nil {
		return err
	}
	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Debug("Export done")
	fmt.Printf("✓ %d frames exported to: %s/\n", written, out)
	return nil
}

// exportFrames writes frame-NNN.png for every drawable frame and, when withGIF
// is set, loop.gif. It returns the number of PNG files written.
func exportFrames(frames []dicom.Frame, out string, withGIF bool, interval time.Duration) (int, error) {
	if err := os.MkdirAll(out, 0755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	session := playback.NewSession(frames, playback.Options{Interval: interval})
	bar := progressCreate(session.Len(), "Exporting")
	defer func() { _ = bar.Finish() }()

	var loop []*image.Gray
	for i := 0; i < session.Len(); i++ {
		_ = bar.Add(1)
		view, _ := session.View(i)
		if !view.HasImage() {
			log.WithError(view.Err).WithField("file", view.Filename).Warn("Frame not exported")
			continue
		}
		img := dcmimage.SideBySide(view.Left, view.Right)
		path := filepath.Join(out, fmt.Sprintf("frame-%03d.png", len(loop)+1))
		if err := writeFile(path, func(w io.Writer) error { return dcmimage.EncodePNG(w, img) }); err != nil {
			return len(loop), err
		}
		loop = append(loop, img)
	}

	if withGIF && len(loop) > 0 {
		path := filepath.Join(out, "loop.gif")
		if err := writeFile(path, func(w io.Writer) error { return dcmimage.EncodeGIF(w, loop, interval) }); err != nil {
			return len(loop), err
		}
	}
	return len(loop), nil
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func generateAction(c *cli.Context) error {
	ecConfig := edgecases.Config{Percentage: c.Int("edge-cases")}
	if ecConfig.Percentage > 0 {
		types, err := edgecases.ParseTypes(c.String("edge-case-types"))
		if err != nil {
			return err
		}
		ecConfig.Types = types
	}

	bar := progressCreate(c.Int("num-images"), "Generating")
	files, err := dicom.GenerateSeries(dicom.GeneratorOptions{
		OutputDir:      c.String("out"),
		NumImages:      c.Int("num-images"),
		Width:          c.Int("width"),
		Height:         c.Int("height"),
		Label:          c.String("label"),
		Seed:           c.Int64("seed"),
		Workers:        c.Int("workers"),
		Modality:       c.String("modality"),
		PatientName:    c.String("patient-name"),
		EdgeCaseConfig: ecConfig,
		Quiet:          true,
		ProgressCallback: func(current, total int) {
			_ = bar.Set(current)
		},
	})
	_ = bar.Finish()
	fmt.Println()
	if err != nil {
		return err
	}

	edge := 0
	for _, f := range files {
		if f.EdgeCase != "" {
			edge++
		}
	}
	fmt.Printf("✓ %d DICOM files created in: %s/ (%d edge cases)\n", len(files), c.String("out"), edge)
	return nil
}

func infoAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	dir := seriesDir(c, cfg)
	if dir == "" {
		return fmt.Errorf("directory is required")
	}

	frames, err := loadWithProgress(dir, cfg.Extension)
	if err != nil {
		return err
	}
	printInfo(os.Stdout, frames)
	return nil
}

// printInfo writes one line per frame: key, file, geometry, buffer size, render status.
func printInfo(w io.Writer, frames []dicom.Frame) {
	session := playback.NewSession(frames, playback.Options{})
	for i := 0; i < session.Len(); i++ {
		view, _ := session.View(i)
		geom := "-"
		if g, ok := frames[i].Dataset.Geometry(); ok {
			geom = g.String()
		}
		status := "ok"
		if view.Err != nil {
			status = view.Err.Error()
		}
		fmt.Fprintf(w, "%4d  %-24s %-9s %8d  %s\n",
			dicom.ExtractNumber(view.Filename), view.Filename, geom, view.Stats.Count, status)
	}
	if session.Len() == 0 {
		fmt.Fprintln(w, "No DICOM files found")
	}
}
