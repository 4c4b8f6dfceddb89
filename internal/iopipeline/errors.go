package iopipeline

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"

	"github.com/happidata/whr/pkg/errcode"
	"github.com/happidata/whr/pkg/resolve"
)

// CollisionError reports a resolution that was rejected because two or
// more raw country names claimed the same canonical name. The whole
// submission is discarded; no partial mapping is kept.
func CollisionError(collisions []resolve.Collision) error {
	var lines []string
	for _, c := range collisions {
		lines = append(lines, fmt.Sprintf(
			"  - %s claimed by: %s", c.Canonical, strings.Join(c.Raws, ", "),
		))
	}
	msg := `Country choices collide and were rejected

%s

<em>How to fix:</em>
  Give each canonical country at most one raw name, or use
  "keep" to preserve a raw name as is.`

	vars := []any{strings.Join(lines, "\n")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResolveCollisionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %d canonical names collide",
			fn, len(collisions)),
	}
}

// ChoicesError wraps resolver rejections such as choices for unknown
// raw names or submissions after the mapping is committed.
func ChoicesError(err error) error {
	msg := "Cannot apply country choices: %s"
	vars := []any{err.Error()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResolveChoicesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: choices rejected: %w", fn, err),
	}
}

// ChoicesFileError reports an unreadable or malformed choices file.
func ChoicesFileError(path string, err error) error {
	msg := `Cannot read choices file <em>%s</em>

The file must be YAML mapping raw country names to canonical
names, with "keep" preserving a raw name as is.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResolveChoicesError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read choices %s: %w",
			fn, path, err),
	}
}
