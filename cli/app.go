// Package cli contains the voxelkernel command line application.
package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/voxelkernel/config"
	"go.viam.com/voxelkernel/logging"
	_ "go.viam.com/voxelkernel/morphology"
	"go.viam.com/voxelkernel/registry"
	"go.viam.com/voxelkernel/voxels"
)

const (
	// Flags.
	flagDebug     = "debug"
	flagConfig    = "config"
	flagVolume    = "volume"
	flagExtent    = "extent"
	flagIntensity = "intensity"
	flagMask      = "mask"
	flagOutput    = "output"
	flagOn        = "on"
	flagOff       = "off"

	intensityVolumeName = "intensity"
)

// NewApp returns the voxelkernel application writing results to out and logs to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	var logger logging.Logger

	return &cli.App{
		Name:      "voxelkernel",
		Usage:     "run structuring-element kernels over binary voxel volumes",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			logger = logging.NewBlankLogger("voxelkernel")
			logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
			if c.Bool(flagDebug) {
				logger.SetLevel(logging.DEBUG)
			} else {
				logger.SetLevel(logging.INFO)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if logger == nil {
				return nil
			}
			return logger.Sync()
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run a configured kernel pipeline against a raw volume",
				UsageText: "voxelkernel run --config FILE --volume FILE --extent X,Y,Z [other options]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagConfig,
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "load the pipeline configuration from `FILE`",
					},
					&cli.StringFlag{
						Name:     flagVolume,
						Required: true,
						Usage:    "raw binary volume `FILE`, one byte per voxel, x fastest",
					},
					&cli.IntSliceFlag{
						Name:     flagExtent,
						Required: true,
						Usage:    "volume extent as `X,Y,Z`",
					},
					&cli.StringFlag{
						Name:  flagIntensity,
						Usage: "raw intensity `FILE` with the volume's extent, available to kernels as \"intensity\"",
					},
					&cli.StringFlag{
						Name:  flagMask,
						Usage: "raw object mask `FILE` covering the operation box, for count_on_mask",
					},
					&cli.StringFlag{
						Name:  flagOutput,
						Usage: "write the volume produced by apply to `FILE`",
					},
					&cli.IntFlag{
						Name:  flagOn,
						Value: int(voxels.DefaultBinaryValues.On),
						Usage: "byte value of on voxels",
					},
					&cli.IntFlag{
						Name:  flagOff,
						Value: int(voxels.DefaultBinaryValues.Off),
						Usage: "byte value of off voxels",
					},
				},
				Action: func(c *cli.Context) error {
					return runAction(c, logger)
				},
			},
			{
				Name:  "kernels",
				Usage: "list registered kernel models",
				Action: func(c *cli.Context) error {
					for _, model := range registry.Models() {
						kind := "count"
						if registry.LookupBinaryKernel(model) != nil {
							kind = "binary"
						}
						fmt.Fprintf(c.App.Writer, "%s\t%s\n", model, kind)
					}
					return nil
				},
			},
		},
	}
}

func binaryValuesFromFlags(c *cli.Context) (voxels.BinaryValues, error) {
	on, off := c.Int(flagOn), c.Int(flagOff)
	if on < 0 || on > 255 || off < 0 || off > 255 {
		return voxels.BinaryValues{}, errors.Errorf("on (%d) and off (%d) must be byte values", on, off)
	}
	return voxels.NewBinaryValues(byte(on), byte(off))
}

func runAction(c *cli.Context, logger logging.Logger) error {
	conf, err := config.Read(c.Context, c.String(flagConfig), logger)
	if err != nil {
		return err
	}
	extent, err := parseExtent(c.IntSlice(flagExtent))
	if err != nil {
		return err
	}
	values, err := binaryValuesFromFlags(c)
	if err != nil {
		return err
	}
	raw, err := readRawVolume(c.String(flagVolume), extent)
	if err != nil {
		return err
	}
	vox := voxels.NewBinaryFromVoxels(raw, values)

	deps := registry.Dependencies{Volumes: map[string]*voxels.Voxels{}}
	if path := c.String(flagIntensity); path != "" {
		intensity, err := readRawVolume(path, extent)
		if err != nil {
			return err
		}
		deps.Volumes[intensityVolumeName] = intensity
	}

	pipeline, err := config.Build(conf, deps, logger)
	if err != nil {
		return err
	}

	var mask *voxels.ObjectMask
	if path := c.String(flagMask); path != "" {
		box, ok := pipeline.Box()
		if !ok {
			return errors.New("a mask needs an operation box to place it in the volume")
		}
		local, err := readRawVolume(path, box.Extent())
		if err != nil {
			return err
		}
		mask, err = voxels.NewObjectMaskFromVoxels(box, voxels.NewBinaryFromVoxels(local, values))
		if err != nil {
			return err
		}
	}

	if mask != nil && pipeline.Kind() != config.OperationCountOnMask {
		logger.Warnw("mask is only used by count_on_mask, ignoring it", "operation", pipeline.Kind())
	}
	if c.String(flagOutput) != "" && pipeline.Kind() != config.OperationApply {
		logger.Warnw("operation produces no volume, ignoring output", "operation", pipeline.Kind())
	}

	result, err := pipeline.Run(c.Context, vox, mask)
	if err != nil {
		return err
	}

	switch result.Kind {
	case config.OperationApply:
		fmt.Fprintf(c.App.Writer, "on voxels: %d\n", result.Count)
		printCenter(c.App.Writer, result)
		if path := c.String(flagOutput); path != "" {
			if err := writeRawVolume(path, result.Volume.Voxels); err != nil {
				return err
			}
			logger.Infow("wrote volume", "path", path, "extent", extent.String())
		}
	case config.OperationUntilPositive:
		fmt.Fprintf(c.App.Writer, "found: %v\n", result.Found)
	case config.OperationCount, config.OperationCountOnMask:
		fmt.Fprintf(c.App.Writer, "count: %d\n", result.Count)
		printCenter(c.App.Writer, result)
	}
	return nil
}

func printCenter(w io.Writer, result *config.Result) {
	if result.Center == nil {
		return
	}
	fmt.Fprintf(w, "center: %.3f %.3f %.3f\n", result.Center.X, result.Center.Y, result.Center.Z)
}
