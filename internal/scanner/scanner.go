package scanner

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vk/modorder/internal/ctxlog"
	"github.com/vk/modorder/internal/fsutil"
	"github.com/vk/modorder/internal/manifest"
)

// ScanError records the failure to read or parse a single definition file.
type ScanError struct {
	Path string
	Err  error
}

// Error implements the error interface for ScanError.
func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying parse or I/O error.
func (e *ScanError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one scan: every descriptor that parsed cleanly,
// in file-path order, plus one ScanError per failed file.
type Result struct {
	Descriptors []*manifest.Descriptor
	Errors      []*ScanError
}

// fileResult pairs one file's parse outcome with its path for re-sorting.
type fileResult struct {
	path        string
	descriptors []*manifest.Descriptor
	err         error
}

// Scan walks modulesPath for .hcl definition files and parses them with up
// to workers concurrent parsers. It fails only when the path itself cannot
// be walked; per-file failures are collected in the Result.
func Scan(ctx context.Context, modulesPath string, workers int) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scanner loading definitions from modules path.", "path", modulesPath)

	filePaths, err := fsutil.FindFilesByExtension(modulesPath, ".hcl")
	if err != nil {
		logger.Error("Failed to walk modules directory.", "path", modulesPath, "error", err)
		return nil, fmt.Errorf("failed to walk modules path %s: %w", modulesPath, err)
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl module files found in path.", "path", modulesPath)
		return &Result{}, nil
	}
	logger.Debug("Found definition files to parse.", "count", len(filePaths))

	if workers < 1 {
		workers = 1
	}
	if workers > len(filePaths) {
		workers = len(filePaths)
	}

	pathChan := make(chan string)
	results := make([]fileResult, 0, len(filePaths))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range pathChan {
				descriptors, parseErr := manifest.ParseFile(ctx, path)
				mu.Lock()
				results = append(results, fileResult{path: path, descriptors: descriptors, err: parseErr})
				mu.Unlock()
			}
		}()
	}

	for _, path := range filePaths {
		pathChan <- path
	}
	close(pathChan)
	wg.Wait()

	// Workers finish in arbitrary order; re-sort by path so repeated scans
	// over the same input produce identical output.
	sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })

	out := &Result{}
	for _, res := range results {
		if res.err != nil {
			logger.Warn("Skipping unparsable definition file.", "file", res.path, "error", res.err)
			out.Errors = append(out.Errors, &ScanError{Path: res.path, Err: res.err})
			continue
		}
		out.Descriptors = append(out.Descriptors, res.descriptors...)
	}

	logger.Info("Scan finished.", "descriptors", len(out.Descriptors), "failed_files", len(out.Errors))
	return out, nil
}
