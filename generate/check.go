package generate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/target"
)

// CheckResult holds the result of checking one input
type CheckResult struct {
	Input    string `json:"input"`
	UpToDate bool   `json:"up_to_date"`
	// Differences lists committed files whose content differs from a fresh generation
	Differences []string `json:"differences,omitempty"`
	// Missing lists files that would be written but do not exist
	Missing []string `json:"missing,omitempty"`
	Skipped string   `json:"skipped,omitempty"`
}

// Check generates req.Input into a temporary directory and compares the
// result with the files on disk. The accessors file must match exactly;
// write-once files belong to the user once written, so only their absence
// counts.
func Check(ctx context.Context, req Request) (*CheckResult, error) {
	r, err := newRun(req)
	if err != nil {
		return nil, err
	}
	result := &CheckResult{Input: req.Input}

	tempDir, err := os.MkdirTemp("", "resgen-check-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	report, err := Run(ctx, Request{
		Input:     req.Input,
		Config:    r.cfg,
		Sink:      req.Sink,
		SkipHooks: true,
		Logger:    req.Logger,
		writeDir:  tempDir,
	})
	if err != nil {
		return nil, err
	}
	if report.Skipped != "" {
		result.Skipped = report.Skipped
		result.UpToDate = true
		return result, nil
	}

	dir := OutputDir(r.cfg, req.Input)
	accessorsName := target.AccessorsFileName(r.lang, BaseName(req.Input))

	for _, generated := range report.Written {
		name := filepath.Base(generated)
		existing := filepath.Join(dir, name)

		if name != accessorsName {
			if _, err := os.Stat(existing); os.IsNotExist(err) {
				result.Missing = append(result.Missing, existing)
			}
			continue
		}

		different, err := filesAreDifferent(generated, existing)
		switch {
		case os.IsNotExist(errors.UnwrapAll(err)):
			result.Missing = append(result.Missing, existing)
		case err != nil:
			return nil, err
		case different:
			result.Differences = append(result.Differences, existing)
		}
	}

	result.UpToDate = len(result.Differences) == 0 && len(result.Missing) == 0
	return result, nil
}

// filesAreDifferent compares generated against existing byte for byte
func filesAreDifferent(generated, existing string) (bool, error) {
	want, err := os.ReadFile(generated)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", generated)
	}
	have, err := os.ReadFile(existing)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", existing)
	}
	return !bytes.Equal(want, have), nil
}
