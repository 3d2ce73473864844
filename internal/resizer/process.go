package resizer

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"shrink/pkg/imgutil"
)

// processCandidate runs decode, resample and encode for one candidate whose
// extension already passed the filter.
func processCandidate(c Candidate, req Request, outputDir string, log *zap.Logger) Result {
	res := Result{Candidate: c}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		res.Outcome = OutcomeErrored
		res.Err = err
		return res
	}

	kind := imgutil.DetectHeader(data[:min(len(data), imgutil.HeaderSize)])
	if kind == imgutil.KindUnknown {
		res.Outcome = OutcomeSkippedUnrecognized
		return res
	}

	src, unrecognized, err := decodeImage(data)
	if err != nil {
		res.Err = err
		if unrecognized {
			res.Outcome = OutcomeSkippedUnrecognized
		} else {
			res.Outcome = OutcomeErrored
		}
		return res
	}

	bounds := src.Bounds()
	res.Width, res.Height = bounds.Dx(), bounds.Dy()
	res.NewWidth, res.NewHeight = req.Scale.Apply(res.Width, res.Height)

	dst, err := resample(src, res.NewWidth, res.NewHeight)
	if err != nil {
		res.Outcome = OutcomeErrored
		res.Err = err
		return res
	}

	destPath, err := resolveDestination(outputDir, OutputName(c.Name, req.Scale), req.Conflict)
	if err != nil {
		res.Outcome = OutcomeErrored
		res.Err = err
		return res
	}

	err = writeAtomic(destPath, func(f *os.File) error {
		return encodeImage(f, dst, c.Ext)
	})
	if err != nil {
		res.Outcome = OutcomeErrored
		res.Err = err
		return res
	}

	log.Debug("resized",
		zap.String("file", c.Name),
		zap.String("kind", kind.String()),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height),
		zap.Int("new_width", res.NewWidth),
		zap.Int("new_height", res.NewHeight),
		zap.String("dest", destPath),
	)

	res.Outcome = OutcomeProcessed
	res.OutputName = filepath.Base(destPath)
	return res
}
