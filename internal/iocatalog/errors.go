package iocatalog

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/happidata/whr/pkg/errcode"
)

// LoadError is fatal for the session: without the catalog no fuzzy
// matching or enrichment can proceed.
func LoadError(path string, err error) error {
	msg := `Cannot load the reference catalog

<em>Catalog file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Missing canonical_name or region column

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Regenerate it: <em>whr catalog build &lt;data-dir&gt;</em>`

	vars := []any{path, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogLoadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot load catalog %s: %w",
			fn, path, err),
	}
}

func BuildError(path string, err error) error {
	msg := "Cannot build catalog from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogBuildError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: catalog build failed for %s: %w",
			fn, path, err),
	}
}

func WriteError(path string, err error) error {
	msg := "Cannot write catalog file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write catalog %s: %w",
			fn, path, err),
	}
}
