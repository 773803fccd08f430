// Command qoiconv converts images between QOI and PNG on disk. It is a
// thin, out-of-scope collaborator around the qoi package's codec engine:
// all file I/O, path handling, and CLI flag parsing live here so the core
// package stays a pure in-memory codec.
package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/qoicodec/qoi"
)

var (
	logger  zerolog.Logger
	verbose bool
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "qoiconv:", errors.Cause(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qoiconv <src> <dst>",
		Short: "Convert images between QOI and PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				qoi.SetLogger(&logger)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return convertPath(args[0], args[1])
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-image opcode summaries")
	return cmd
}

func convertPath(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrap(err, "stat source")
	}
	if !info.IsDir() {
		return convertFile(src, dst)
	}

	entries, err := filepath.Glob(filepath.Join(src, "*"))
	if err != nil {
		return errors.Wrap(err, "listing source directory")
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return errors.Wrap(err, "creating destination directory")
	}

	bar := progressbar.Default(int64(len(entries)), "converting")
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry))
		if ext != ".png" && ext != ".qoi" {
			continue
		}
		out := filepath.Join(dst, swapExt(filepath.Base(entry)))
		if err := convertFile(entry, out); err != nil {
			return errors.Wrapf(err, "converting %s", entry)
		}
		_ = bar.Add(1)
	}
	return nil
}

func swapExt(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if strings.EqualFold(ext, ".png") {
		return base + ".qoi"
	}
	return base + ".png"
}

func convertFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source")
	}
	defer in.Close()

	img, format, err := decodeAny(in)
	if err != nil {
		return errors.Wrap(err, "decoding source")
	}
	logger.Debug().Str("file", src).Str("format", format).Msg("decoded")

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "creating destination")
	}
	defer out.Close()

	switch strings.ToLower(filepath.Ext(dst)) {
	case ".qoi":
		return qoi.ImageEncode(out, img)
	case ".png":
		return png.Encode(out, img)
	default:
		return errors.Errorf("unrecognized destination extension %q", filepath.Ext(dst))
	}
}

func decodeAny(f *os.File) (image.Image, string, error) {
	switch strings.ToLower(filepath.Ext(f.Name())) {
	case ".qoi":
		img, err := qoi.ImageDecode(f)
		return img, "qoi", err
	default:
		return image.Decode(f)
	}
}
