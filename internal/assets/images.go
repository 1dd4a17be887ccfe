// Package assets keeps the blog's static images within size limits.
package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// Action describes what the pipeline did to one image.
type Action string

const (
	ActionResized  Action = "resized"
	ActionKept     Action = "kept"
	ActionFlagged  Action = "flagged" // oversized but not JPEG; left for the author
)

// Report is the outcome for one image file.
type Report struct {
	Path     string
	Action   Action
	Width    int
	NewWidth int
	OldSize  int
	NewSize  int
}

// Options tunes the pipeline.
type Options struct {
	MaxWidth    int
	JPEGQuality int
}

// ProcessDir walks staticDir and downscales every JPEG wider than
// Options.MaxWidth in place. Non-JPEG formats are never rewritten (posts
// reference them by name, and a format change would break those links);
// oversized ones are flagged instead.
func ProcessDir(staticDir string, opts Options) ([]Report, error) {
	var reports []Report

	err := filepath.WalkDir(staticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		switch ext {
		case ".jpg", ".jpeg":
			rep, err := processJPEG(path, opts)
			if err != nil {
				return err
			}
			reports = append(reports, rep)
		case ".png", ".gif":
			rep, err := inspectImage(path, opts.MaxWidth)
			if err != nil {
				return err
			}
			reports = append(reports, rep)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("process images in %s: %w", staticDir, err)
	}
	return reports, nil
}

func processJPEG(path string, opts Options) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read image %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Report{}, fmt.Errorf("decode image %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= opts.MaxWidth {
		return Report{Path: path, Action: ActionKept, Width: w, OldSize: len(data), NewSize: len(data)}, nil
	}

	newW := opts.MaxWidth
	newH := h * newW / w
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: opts.JPEGQuality}); err != nil {
		return Report{}, fmt.Errorf("encode image %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Report{}, fmt.Errorf("write image %s: %w", path, err)
	}

	slog.Info("Resized image", "path", path, "width", w, "new_width", newW,
		"bytes", len(data), "new_bytes", buf.Len())
	return Report{
		Path: path, Action: ActionResized,
		Width: w, NewWidth: newW,
		OldSize: len(data), NewSize: buf.Len(),
	}, nil
}

func inspectImage(path string, maxWidth int) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Report{}, fmt.Errorf("decode image config %s: %w", path, err)
	}

	action := ActionKept
	if cfg.Width > maxWidth {
		action = ActionFlagged
		slog.Warn("Oversized non-JPEG image", "path", path, "width", cfg.Width, "max_width", maxWidth)
	}
	return Report{Path: path, Action: action, Width: cfg.Width}, nil
}
