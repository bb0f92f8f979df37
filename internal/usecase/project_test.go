package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devflow/internal/adapter/fs"
	"devflow/internal/adapter/provider"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestAnalyzeProject_Aggregates(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "main.go", "package main\nfunc main() {}\n")
	writeSource(t, dir, "risky.rs", "fn main() { unsafe { x() } }\n")
	writeSource(t, dir, "vendor/skip.go", "package vendored\n")

	s, err := NewSession(provider.NewLocal(), nil, testConfig(2), nil, nil)
	require.NoError(t, err)

	walker := fs.NewWalker([]string{"**/*.go", "**/*.rs"}, []string{"**/vendor/**"}, 0)
	project := NewProjectUseCase(s, walker)

	var seen atomic.Int64
	report, err := project.AnalyzeProject(context.Background(), dir, func(fs.SourceFile) {
		seen.Add(1)
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.FilesAnalyzed)
	assert.Equal(t, int64(2), seen.Load())
	assert.Equal(t, 1, report.Languages["go"])
	assert.Equal(t, 1, report.Languages["rust"])
	assert.GreaterOrEqual(t, report.SecurityCount, 1, "the unsafe block should be counted")
	assert.Greater(t, report.AvgQuality, 0.0)
	assert.Contains(t, report.Hotspots, "risky.rs")

	// Files are reported in path order regardless of completion order.
	require.Len(t, report.Files, 2)
	assert.Equal(t, "main.go", report.Files[0].Path)
	assert.Equal(t, "risky.rs", report.Files[1].Path)
}

func TestAnalyzeProject_RecordsPerFileErrors(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.go", "package a\n")

	p := &fakeProvider{err: errors.New("backend down")}
	s, err := NewSession(p, nil, testConfig(2), nil, nil)
	require.NoError(t, err)

	project := NewProjectUseCase(s, fs.NewWalker([]string{"**/*.go"}, nil, 0))

	report, err := project.AnalyzeProject(context.Background(), dir, nil)
	require.NoError(t, err, "per-file provider failures must not abort the run")

	require.Len(t, report.Files, 1)
	assert.Equal(t, 0, report.FilesAnalyzed)
	assert.NotEmpty(t, report.Files[0].Err)
	assert.Nil(t, report.Files[0].Result)

	// Static metrics are still collected even when the provider fails.
	assert.Greater(t, report.Files[0].Metrics.LinesOfCode, 0)
}

func TestAnalyzeProject_EmptyDir(t *testing.T) {
	dir := t.TempDir()

	s, err := NewSession(provider.NewLocal(), nil, testConfig(1), nil, nil)
	require.NoError(t, err)

	report, err := NewProjectUseCase(s, fs.NewWalker(nil, nil, 0)).AnalyzeProject(context.Background(), dir, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Files)
	assert.Equal(t, 0, report.FilesAnalyzed)
}
