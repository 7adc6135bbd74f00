package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/mrsinham/dicomloop/cmd/dicomloop/viewer"
	"github.com/mrsinham/dicomloop/internal/config"
	"github.com/mrsinham/dicomloop/internal/logger"
)

// version is set at build time via -ldflags
var version = "dev"

var app = cli.NewApp()
var log = logger.Log

func init() {
	app.Name = "dicomloop"
	app.Usage = "Loop through a DICOM series in the terminal"
	app.UsageText = "dicomloop [global options] [command] [directory]"
	app.Version = version
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Value: "dicomloop.yaml", Usage: "YAML configuration file"},
		cli.StringFlag{Name: "dir, d", Usage: "Series directory (overrides the config)"},
		cli.StringFlag{Name: "ext", Usage: "DICOM file extension (default .dcm)"},
		cli.IntFlag{Name: "fps", Usage: fmt.Sprintf("Playback rate, 1-%d", config.MaxFPS)},
		cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
	}
	app.Before = func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		return logger.SetLevel(cfg.Log.Level)
	}
	app.Action = viewAction
	app.Commands = []cli.Command{
		{
			Name:      "view",
			Aliases:   []string{"v"},
			Usage:     "Play the series (default)",
			ArgsUsage: "[directory]",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "stats", Usage: "Show pixel statistics on start"},
				cli.StringSliceFlag{Name: "field", Usage: "Extra metadata field to show (repeatable)"},
			},
			Action: viewAction,
		},
		{
			Name:      "export",
			Aliases:   []string{"e"},
			Usage:     "Write every frame as PNG and the loop as an animated GIF",
			ArgsUsage: "[directory]",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "out, o", Usage: "Output directory (overrides the config)"},
				cli.BoolFlag{Name: "no-gif", Usage: "Skip loop.gif"},
			},
			Action: exportAction,
		},
		{
			Name:    "generate",
			Aliases: []string{"g"},
			Usage:   "Write a demo series",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "out, o", Value: "dicom_series", Usage: "Output directory"},
				cli.IntFlag{Name: "num-images, n", Value: 12, Usage: "Number of files"},
				cli.IntFlag{Name: "width", Value: 128, Usage: "Columns"},
				cli.IntFlag{Name: "height", Value: 128, Usage: "Rows"},
				cli.StringFlag{Name: "label", Value: "1", Usage: "File name prefix"},
				cli.Int64Flag{Name: "seed", Usage: "Seed for reproducibility (derived from the output directory if 0)"},
				cli.IntFlag{Name: "workers", Usage: "Parallel workers (0 = CPU cores)"},
				cli.StringFlag{Name: "modality", Value: "MR", Usage: "Modality tag value"},
				cli.StringFlag{Name: "patient-name", Usage: "Patient name (random if empty)"},
				cli.IntFlag{Name: "edge-cases", Usage: "Percentage of files with an edge case (0-100)"},
				cli.StringFlag{
					Name:  "edge-case-types",
					Value: "missing-tags,zero-geometry,truncated-pixels,unnumbered-names,not-dicom",
					Usage: "Comma-separated edge case types",
				},
			},
			Action: generateAction,
		},
		{
			Name:      "info",
			Aliases:   []string{"i"},
			Usage:     "Print one line per frame",
			ArgsUsage: "[directory]",
			Action:    infoAction,
		},
		{
			Name:  "init-config",
			Usage: "Write the effective configuration to the --config file",
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c)
				if err != nil {
					return err
				}
				path := c.GlobalString("config")
				if err := config.SaveConfig(cfg, path); err != nil {
					return err
				}
				fmt.Printf("✓ Configuration written to %s\n", path)
				return nil
			},
		},
	}
}

func main() {
	err := app.Run(os.Args)
	if errors.Is(err, viewer.ErrCancelled) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
}
