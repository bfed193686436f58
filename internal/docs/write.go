// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package docs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/clitools/internal/ctxlog"
	"github.com/spf13/afero"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
	FormatAll      = "all"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrUnknownFormat is returned when a format is not one of the Format constants.
var ErrUnknownFormat = errors.New("unknown documentation format")

// Formats returns the formats accepted by --format.
func Formats() []string {
	return []string{FormatMarkdown, FormatYAML, FormatAll}
}

// FileName returns the file written for the manifest in format.
func FileName(m *Manifest, format string) string {
	switch format {
	case FormatYAML:
		return m.Name + ".yaml"
	default:
		return m.Name + ".md"
	}
}

// Write renders the manifests in format and writes them to dir.
// In dry run mode the paths are logged and nothing is written.
// It returns the paths written, failures for one manifest do not stop the others.
func Write(ctx context.Context, dir, format string, dryRun bool, manifests ...*Manifest) ([]string, error) {
	formats, err := expandFormat(format)
	if err != nil {
		return nil, err
	}

	fs := FsFactory()

	if !dryRun {
		if err := fs.MkdirAll(dir, dirPerm); err != nil {
			return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	var (
		result  *multierror.Error
		written []string
	)

	for _, m := range manifests {
		for _, f := range formats {
			path := filepath.Join(dir, FileName(m, f))

			if dryRun {
				ctxlog.Info(ctx, "dry run", "path", path)
				written = append(written, path)

				continue
			}

			if err := writeOne(fs, path, m, f); err != nil {
				result = multierror.Append(result, err)
				continue
			}

			ctxlog.Info(ctx, "wrote documentation", "path", path)
			written = append(written, path)
		}
	}

	return written, result.ErrorOrNil()
}

func writeOne(fs afero.Fs, path string, m *Manifest, format string) error {
	var data []byte

	switch format {
	case FormatYAML:
		b, err := m.YAML()
		if err != nil {
			return err
		}

		data = b
	default:
		data = m.Markdown()
	}

	if err := afero.WriteFile(fs, path, data, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

func expandFormat(format string) ([]string, error) {
	switch {
	case format == FormatAll:
		return []string{FormatMarkdown, FormatYAML}, nil
	case slices.Contains(Formats(), format):
		return []string{format}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
