package resizer

import (
	"errors"
	"io"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

// ExifSummary describes the EXIF metadata found in a source file. Resized
// copies are written by plain encoders, so none of it is carried over.
type ExifSummary struct {
	Tags        int
	HasGPS      bool
	HasModel    bool
	Orientation string
}

func analyzeExif(rs io.ReadSeeker) (ExifSummary, error) {
	summary := ExifSummary{}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return summary, err
	}

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		if isNoExif(err) {
			return summary, nil
		}
		return summary, err
	}

	for _, tag := range tags {
		summary.Tags++
		switch {
		case strings.HasPrefix(tag.TagName, "GPS") || strings.Contains(tag.IfdPath, "GPS"):
			summary.HasGPS = true
		case tag.TagName == "Model":
			summary.HasModel = true
		case tag.TagName == "Orientation":
			summary.Orientation = tag.FormattedFirst
		}
	}

	return summary, nil
}

func isNoExif(err error) bool {
	if errors.Is(err, exif.ErrNoExif) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}
