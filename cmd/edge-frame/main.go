// Command edge-frame runs the frame edge pipeline over an image file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"realtime-edge/internal/config"
	"realtime-edge/internal/frame"
	"realtime-edge/internal/imageio"
	"realtime-edge/internal/logger"
	"realtime-edge/internal/opencv/memory"
)

const component = "EdgeFrame"

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("edge-frame", flag.ContinueOnError)
	fs.SetOutput(stderr)

	input := fs.String("in", "", "Input image (png, jpeg, gif, bmp, tiff, webp, tga)")
	output := fs.String("out", "", "Output image (default: edge-<unix millis>.<format>)")
	configFile := fs.String("config", "", "Path to a JSON config file")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "", "Log format: json or console")
	format := fs.String("format", "", "Output format when -out has no known extension: png, webp, bmp, tiff")
	maxWidth := fs.Int("max-width", 0, "Scale the input down to at most this width before processing")
	memLimit := fs.Int64("memory-limit", 0, "Byte ceiling for one frame's working set")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		fs.Usage()
		return errors.New("-in is required")
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			return err
		}
	}

	cfg.Resolve(config.Flags{
		LogLevel:     *logLevel,
		LogFormat:    *logFormat,
		MemoryLimit:  *memLimit,
		OutputFormat: *format,
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.New(stderr, cfg.LogFormat, level)

	src, err := imageio.Load(*input)
	if err != nil {
		return err
	}
	src = imageio.Fit(src, *maxWidth)

	outPath, outFormat := outputTarget(*output, cfg.OutputFormat, time.Now())

	log.Debug(component, "processing frame", map[string]interface{}{
		"input":  *input,
		"width":  src.Width,
		"height": src.Height,
	})

	processor := frame.NewProcessor(
		frame.WithLogger(log),
		frame.WithMemoryManager(memory.NewManager(cfg.MemoryLimitBytes)),
	)

	start := time.Now()
	res := processor.Run(frame.Bytes(src.Pix), src.Width, src.Height)
	if !res.OK() {
		return fmt.Errorf("edge detection failed: %w", res.Err)
	}
	elapsed := time.Since(start)

	edges := imageio.Frame{Pix: res.Data, Width: src.Width, Height: src.Height}
	if err := imageio.Save(outPath, edges, outFormat); err != nil {
		return err
	}

	log.Info(component, "wrote edge map", map[string]interface{}{
		"output":     outPath,
		"format":     outFormat,
		"size":       fmt.Sprintf("%dx%d", src.Width, src.Height),
		"elapsed_ms": elapsed.Milliseconds(),
	})
	return nil
}

// outputTarget resolves the output path and encoder. An explicit extension
// wins over the configured format.
func outputTarget(path, fallback string, now time.Time) (string, string) {
	if path == "" {
		return fmt.Sprintf("edge-%d%s", now.UnixMilli(), imageio.Extension(fallback)), fallback
	}
	if format, ok := imageio.FormatFromPath(path); ok {
		return path, format
	}
	return path, fallback
}
