package iopipeline

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/happidata/whr/pkg/resolve"
)

// keepWord is accepted in a choices file instead of the full
// resolve.KeepOriginal sentinel.
const keepWord = "keep"

// ReadChoices loads resolution choices from a YAML file that maps raw
// country names to canonical names. The value "keep" preserves the raw
// name as its own canonical identity.
func ReadChoices(path string) (map[string]string, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, ChoicesFileError(path, err)
	}
	var raw map[string]string
	if err = yaml.Unmarshal(bs, &raw); err != nil {
		return nil, ChoicesFileError(path, err)
	}
	res := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == keepWord {
			v = resolve.KeepOriginal
		}
		res[k] = v
	}
	return res, nil
}
