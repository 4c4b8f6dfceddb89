package ioexport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/happidata/whr/pkg/errcode"
)

func CreateError(path string, err error) error {
	msg := `Cannot create export target <em>%s</em>

<em>Possible causes:</em>
  - Directory does not exist
  - No write permission`

	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportCreateError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create export %s: %w",
			fn, path, err),
	}
}

func WriteError(path string, err error) error {
	msg := "Cannot write export data to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write export %s: %w",
			fn, path, err),
	}
}
