// Package scenario reads calculator inputs from TOML or JSON files and
// enters them into a form as user edits.
//
// A scenario file names the pay mode, the role and any subset of fields:
//
//	mode = "salary"
//	role = "manager"
//
//	[fields]
//	annual_salary = 80000
//	commute_mins  = "20"
package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/derickschaefer/truewage/internal/form"
	"github.com/derickschaefer/truewage/internal/model"
	"github.com/derickschaefer/truewage/internal/util"
	"github.com/pelletier/go-toml/v2"
)

// Format constants for scenario files.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// File is the on-disk representation of a scenario. Field values may be
// numbers or strings; strings are kept verbatim as typed text.
type File struct {
	Mode   string         `toml:"mode" json:"mode"`
	Role   string         `toml:"role" json:"role"`
	Fields map[string]any `toml:"fields" json:"fields"`
}

// Scenario is a validated scenario ready to apply.
type Scenario struct {
	Mode   model.PayMode
	Role   model.Role
	Fields map[model.FieldID]string
}

// Load reads a scenario from path, choosing the decoder by extension
// (.toml, or .json; anything else is tried as TOML).
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scenario: %w", err)
	}
	defer f.Close()

	format := FormatTOML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	s, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Read decodes and validates a scenario from r.
func Read(r io.Reader, format string) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var raw File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported scenario format %q", format)
	}
	return validate(raw)
}

// validate converts a raw File, collecting every problem rather than
// stopping at the first.
func validate(raw File) (*Scenario, error) {
	var errs util.MultiError
	s := &Scenario{Fields: make(map[model.FieldID]string, len(raw.Fields))}

	if raw.Mode != "" {
		m, err := model.ParsePayMode(raw.Mode)
		errs.Add(err)
		s.Mode = m
	}
	if raw.Role != "" {
		r, err := model.ParseRole(raw.Role)
		errs.Add(err)
		s.Role = r
	}

	keys := make([]string, 0, len(raw.Fields))
	for k := range raw.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		id, err := model.ParseFieldID(k)
		if err != nil {
			errs.Add(err)
			continue
		}
		text, err := fieldText(raw.Fields[k])
		if err != nil {
			errs.Add(fmt.Errorf("field %s: %w", k, err))
			continue
		}
		s.Fields[id] = text
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// fieldText turns a decoded TOML/JSON value into field text.
func fieldText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case float64:
		return util.FormatValue(x), nil
	case int64:
		return util.FormatValue(float64(x)), nil
	case int:
		return util.FormatValue(float64(x)), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unexpected value type %T", v)
	}
}

// Apply enters the scenario into f. Fields are entered first as user edits,
// so the role preset applied afterwards cannot overwrite them.
func (s *Scenario) Apply(f *form.Form) error {
	for _, id := range model.AllFields {
		if text, ok := s.Fields[id]; ok {
			f.SetText(id, text)
		}
	}
	if s.Mode != "" {
		if err := f.SelectPayMode(s.Mode); err != nil {
			return err
		}
	}
	if s.Role != "" {
		if err := f.SelectRole(s.Role); err != nil {
			return err
		}
	}
	return nil
}
