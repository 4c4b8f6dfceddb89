package ioupload

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/happidata/whr/pkg/errcode"
)

func ReadError(path string, err error) error {
	msg := `Cannot read uploaded file <em>%s</em>

<em>Possible causes:</em>
  - File does not exist or permission denied
  - Not a valid CSV/XLSX file
  - Missing header row`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UploadReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read upload %s: %w",
			fn, path, err),
	}
}

func EmptyError(path string) error {
	msg := "Uploaded file <em>%s</em> has no header row"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UploadEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: upload %s is empty", fn, path),
	}
}

// MissingColumnError reports that the standardizer could not discover
// a required canonical column in the upload. Downstream matching on a
// non-existent column must fail loudly, not silently.
func MissingColumnError(path, column string) error {
	msg := `Uploaded file <em>%s</em> has no discoverable <em>%s</em> column

<em>How to fix:</em>
  1. Check the header row of the file
  2. A column whose name contains the word shown above is required`
	vars := []any{path, column}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UploadMissingColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: upload %s lacks column %q",
			fn, path, column),
	}
}
