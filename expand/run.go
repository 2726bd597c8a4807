package expand

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssmix/config"
	"cssmix/state"
)

// Run implements the expand subcommand: it reads stylesheets from the
// source, rewrites helper calls and writes results to the destination.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("expand")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) != 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite, env.InPlace = cmd.Bool("overwrite"), cmd.Bool("in-place")
	if env.InPlace && len(dst) != 0 {
		log.Warn("Destination is ignored when rewriting in place", zap.String("destination", dst))
		dst = ""
	}

	e := NewFromConfig(env.Cfg, env.Log)

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	if fi.Mode().IsDir() {
		if env.InPlace {
			return processDir(ctx, e, src, src, log)
		}
		if len(dst) == 0 {
			if dst, err = os.Getwd(); err != nil {
				return fmt.Errorf("unable to get working directory: %w", err)
			}
		}
		return processDir(ctx, e, src, dst, log)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}

	out := dst
	if env.InPlace {
		out = src
	} else if len(out) != 0 {
		if fi, err := os.Stat(out); err == nil && fi.Mode().IsDir() {
			out = filepath.Join(out, filepath.Base(src))
		}
	}
	return processSheet(ctx, e, src, out, log)
}

// processDir walks directory tree finding css files and processes them,
// mirroring the source layout under dst.
func processDir(ctx context.Context, e *Expander, dir, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".css") {
			log.Debug("Skipping file, not a stylesheet", zap.String("file", path))
			return nil
		}

		count++

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processSheet(ctx, e, path, filepath.Join(dst, rel), log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

// processSheet expands a single stylesheet. Empty "out" sends the result to
// stdout, which only happens for a single file without a destination.
func processSheet(ctx context.Context, e *Expander, src, out string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	log.Info("Expansion starting", zap.String("from", src))
	defer func(start time.Time) {
		log.Info("Expansion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", out))
	}(time.Now())

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet (%s): %w", src, err)
	}
	env.Rpt.StoreData("input-"+config.CleanFileName(filepath.Base(src)), data)

	sheet := e.Parse(data, src)
	for _, w := range sheet.Warnings {
		log.Warn("Parser warning", zap.String("file", src), zap.String("problem", w))
	}

	if err := e.Expand(sheet); err != nil {
		return fmt.Errorf("unable to expand stylesheet (%s): %w", src, err)
	}

	result := []byte(sheet.String())
	env.Rpt.StoreData("output-"+config.CleanFileName(filepath.Base(src)), result)

	if len(out) == 0 {
		_, err := os.Stdout.Write(result)
		return err
	}
	if out != src {
		if _, err := os.Stat(out); err == nil {
			if !env.Overwrite {
				return fmt.Errorf("output file already exists: %s", out)
			}
			log.Warn("Overwriting existing file", zap.String("file", out))
		} else if !os.IsNotExist(err) {
			return err
		} else if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}
	}
	return os.WriteFile(out, result, 0644)
}
