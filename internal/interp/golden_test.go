package interp

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goldenTimeout = 5 * time.Second

// TestGoodPrograms runs every testdata/good/*.logo program and compares what
// it prints with the matching .out file.
func TestGoodPrograms(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "good", "*.logo"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(file)
			require.NoError(t, err)
			expected, err := os.ReadFile(strings.TrimSuffix(file, ".logo") + ".out")
			require.NoError(t, err, "missing expected output")

			out := &collector{}
			ctx, cancel := context.WithTimeout(context.Background(), goldenTimeout)
			defer cancel()

			_, _, err = Run(ctx, string(src), Options{Output: out.print})
			require.NoError(t, err)

			got := strings.Join(out.lines, "\n") + "\n"
			want := string(bytes.ReplaceAll(expected, []byte("\r\n"), []byte("\n")))
			assert.Equal(t, want, got)
		})
	}
}

// TestBadPrograms expects every testdata/bad/*.logo program to fail, either
// while parsing or while running.
func TestBadPrograms(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "bad", "*.logo"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	patterns := []string{"Syntax Error:", "Semantic Error:", "error:"}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			src, err := os.ReadFile(file)
			require.NoError(t, err)

			out := &collector{}
			ctx, cancel := context.WithTimeout(context.Background(), goldenTimeout)
			defer cancel()

			_, _, err = Run(ctx, string(src), Options{Output: out.print})
			require.Error(t, err, "expected failure but got success")

			report := strings.Join(out.lines, "\n")
			var perr *ParseError
			if errors.As(err, &perr) {
				report = strings.Join(perr.Diagnostics, "\n")
			}
			matched := false
			for _, p := range patterns {
				if strings.Contains(report, p) {
					matched = true
					break
				}
			}
			assert.True(t, matched, "no recognised error message in:\n%s", report)
		})
	}
}
