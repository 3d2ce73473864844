package resizer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// supportedExtensions is matched against the lowercased extension.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
}

// SupportedExtension reports whether ext (with its dot, any case) is one of
// the accepted image extensions.
func SupportedExtension(ext string) bool {
	return supportedExtensions[strings.ToLower(ext)]
}

// OutputName derives "{base}_resized_{selector}{ext}". The extension keeps
// its original case.
func OutputName(name string, scale Scale) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return base + "_resized_" + scale.String() + ext
}

// resolveDestination returns the path the resized copy is written to.
func resolveDestination(outputDir, outputName string, policy ConflictPolicy) (string, error) {
	dest := filepath.Join(outputDir, outputName)
	if policy != ConflictRename {
		return dest, nil
	}

	ext := filepath.Ext(outputName)
	stem := strings.TrimSuffix(outputName, ext)
	candidate := dest
	for n := 1; ; n++ {
		_, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = filepath.Join(outputDir, fmt.Sprintf("%s - dup%d%s", stem, n, ext))
	}
}

// writeAtomic writes through a temp file in the destination directory and
// renames it into place, so a failed encode never leaves a partial file.
func writeAtomic(destPath string, write func(f *os.File) error) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".shrink-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if err := write(tmpFile); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpFile.Name(), 0o644); err != nil {
		return err
	}

	return replaceFile(tmpFile.Name(), destPath)
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
