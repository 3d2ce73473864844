package resizer

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"shrink/pkg/imgutil"
)

// PlanEntry is the predicted outcome for one candidate, computed without
// decoding pixels or writing anything.
type PlanEntry struct {
	Candidate
	Outcome    Outcome
	Kind       imgutil.Kind
	Width      int
	Height     int
	NewWidth   int
	NewHeight  int
	OutputName string
	Exif       ExifSummary
	Err        error
}

// Plan applies the classification rules of Run to req.SourceDir and reads
// only image headers. The output folder is neither created nor written to.
func Plan(req Request) ([]PlanEntry, error) {
	if req.SourceDir == "" {
		return nil, ErrNoSource
	}
	if !req.Scale.Valid() {
		return nil, fmt.Errorf("%w: %d%%", ErrInvalidScale, int(req.Scale))
	}

	entries, err := os.ReadDir(req.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("read source folder: %w", err)
	}

	outputDir := req.ResolvedOutputDir()
	plan := make([]PlanEntry, 0, len(entries))
	for _, entry := range entries {
		c := newCandidate(req.SourceDir, entry.Name())
		pe := PlanEntry{Candidate: c}
		if !isRegular(entry, c.Path) || !SupportedExtension(c.Ext) {
			pe.Outcome = OutcomeSkippedUnsupported
			plan = append(plan, pe)
			continue
		}
		planCandidate(&pe, req, outputDir)
		plan = append(plan, pe)
	}

	return plan, nil
}

func planCandidate(pe *PlanEntry, req Request, outputDir string) {
	f, err := os.Open(pe.Path)
	if err != nil {
		pe.Outcome, pe.Err = OutcomeErrored, err
		return
	}
	defer f.Close()

	pe.Kind, err = imgutil.SniffReader(f)
	if err != nil {
		pe.Outcome, pe.Err = OutcomeErrored, err
		return
	}
	if pe.Kind == imgutil.KindUnknown {
		pe.Outcome = OutcomeSkippedUnrecognized
		return
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		pe.Outcome, pe.Err = OutcomeErrored, err
		return
	}
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		pe.Err = err
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) && isUnrecognized(err) {
			pe.Outcome = OutcomeSkippedUnrecognized
		} else {
			pe.Outcome = OutcomeErrored
		}
		return
	}

	pe.Width, pe.Height = cfg.Width, cfg.Height
	pe.NewWidth, pe.NewHeight = req.Scale.Apply(cfg.Width, cfg.Height)
	if pe.NewWidth <= 0 || pe.NewHeight <= 0 {
		pe.Outcome = OutcomeErrored
		pe.Err = fmt.Errorf("%w: %dx%d", ErrEmptyTarget, pe.NewWidth, pe.NewHeight)
		return
	}

	// EXIF is informational; a parse failure does not change the outcome.
	pe.Exif, _ = analyzeExif(f)

	dest, err := resolveDestination(outputDir, OutputName(pe.Name, req.Scale), req.Conflict)
	if err != nil {
		pe.Outcome, pe.Err = OutcomeErrored, err
		return
	}
	pe.OutputName = filepath.Base(dest)
	pe.Outcome = OutcomeProcessed
}
