package resizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shrink/pkg/imgutil"
)

func TestPlanPredictsWithoutWriting(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "not-yet")
	writePNG(t, filepath.Join(src, "a.png"), 100, 60)
	writeFile(t, filepath.Join(src, "b.txt"), "x")
	writeFile(t, filepath.Join(src, "c.gif"), "not a gif")
	writePNG(t, filepath.Join(src, "dot.png"), 1, 1)
	require.NoError(t, os.WriteFile(filepath.Join(src, "cam.jpg"), jpegWithExif(t, 40, 20), 0o644))

	plan, err := Plan(Request{SourceDir: src, OutputDir: out, Scale: Scale50})
	require.NoError(t, err)
	require.Len(t, plan, 5)
	assert.NoDirExists(t, out)

	byName := map[string]PlanEntry{}
	for _, pe := range plan {
		byName[pe.Name] = pe
	}

	a := byName["a.png"]
	assert.Equal(t, OutcomeProcessed, a.Outcome)
	assert.Equal(t, imgutil.KindPNG, a.Kind)
	assert.Equal(t, [4]int{100, 60, 50, 30}, [4]int{a.Width, a.Height, a.NewWidth, a.NewHeight})
	assert.Equal(t, "a_resized_50%.png", a.OutputName)

	assert.Equal(t, OutcomeSkippedUnsupported, byName["b.txt"].Outcome)
	assert.Equal(t, OutcomeSkippedUnrecognized, byName["c.gif"].Outcome)

	dot := byName["dot.png"]
	assert.Equal(t, OutcomeErrored, dot.Outcome)
	assert.ErrorIs(t, dot.Err, ErrEmptyTarget)

	cam := byName["cam.jpg"]
	assert.Equal(t, OutcomeProcessed, cam.Outcome)
	assert.Equal(t, imgutil.KindJPEG, cam.Kind)
	assert.Equal(t, 2, cam.Exif.Tags)
	assert.True(t, cam.Exif.HasModel)
}

func TestPlanHonoursRenamePolicy(t *testing.T) {
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "a.png"), 10, 10)
	writeFile(t, filepath.Join(src, "a_resized_50%.png"), "previous run")

	plan, err := Plan(Request{SourceDir: src, Scale: Scale50, Conflict: ConflictRename})
	require.NoError(t, err)

	for _, pe := range plan {
		if pe.Name == "a.png" {
			assert.Equal(t, "a_resized_50% - dup1.png", pe.OutputName)
		}
	}
}

func TestPlanRequiresSource(t *testing.T) {
	_, err := Plan(Request{Scale: Scale50})
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestPlanRejectsOutOfRangeScale(t *testing.T) {
	for _, sc := range []Scale{0, MaxPercent + 1, 100000000} {
		_, err := Plan(Request{SourceDir: t.TempDir(), Scale: sc})
		assert.ErrorIs(t, err, ErrInvalidScale, sc.String())
	}
}
