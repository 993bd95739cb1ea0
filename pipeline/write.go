package pipeline

import (
	"errors"
	"maps"
	"path/filepath"
	"slices"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/internal/fileutil"
)

// WriteAll writes each variant to "<dir>/<name>.json", creating dir if
// needed. Every file is attempted; the returned exit code is the maximum of
// the per-file codes (0 written, 1 failed) and the error joins the
// failures.
func WriteAll(dir string, variants map[string]document.Object, logger document.Logger) (int, error) {
	if logger == nil {
		logger = document.NopLogger{}
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		return 1, err
	}
	code := 0
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(variants)) {
		path := filepath.Join(dir, name+".json")
		if err := document.Store(path, variants[name]); err != nil {
			logger.Error("failed to write variant", "variant", name, "path", path, "error", err)
			errs = append(errs, err)
			code = max(code, 1)
			continue
		}
		logger.Debug("wrote variant", "variant", name, "path", path)
	}
	return code, errors.Join(errs...)
}
