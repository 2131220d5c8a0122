package InputParameters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"gopkg.in/gcfg.v1"

	"github.com/notargets/gopersa/flowfields"
	"github.com/notargets/gopersa/types"
)

// referenceWrapper maps the [referenceValues] section of an INI file
type referenceWrapper struct {
	ReferenceValues flowfields.ReferenceValues
}

// LoadReferenceValues reads the free stream constants from a YAML/JSON or INI
// file, chosen by extension, and validates them.
func LoadReferenceValues(path string) (ref *flowfields.ReferenceValues, err error) {
	ref = &flowfields.ReferenceValues{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		var data []byte
		if data, err = os.ReadFile(path); err != nil {
			return nil, &types.ConfigurationError{Path: path, Msg: "unable to read reference values", Err: err}
		}
		if err = yaml.Unmarshal(data, ref); err != nil {
			return nil, &types.ConfigurationError{Path: path, Msg: "unable to parse reference values", Err: err}
		}
	case ".ini", ".cfg", ".gcfg":
		var wrap referenceWrapper
		if err = gcfg.ReadFileInto(&wrap, path); err != nil {
			return nil, &types.ConfigurationError{Path: path, Msg: "unable to read [referenceValues]", Err: err}
		}
		*ref = wrap.ReferenceValues
	default:
		return nil, &types.ConfigurationError{Path: path, Msg: "unknown reference file type, want .yaml, .json or .ini"}
	}
	if err = ref.Validate(); err != nil {
		return nil, &types.ConfigurationError{Path: path, Msg: "invalid reference values", Err: err}
	}
	return
}
