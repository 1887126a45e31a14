package validate

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

func field(obj gjson.Result, name string) (gjson.Result, error) {
	v := obj.Get(gjson.Escape(name))
	if !v.Exists() {
		return v, &Error{Field: name, Reason: "missing"}
	}
	return v, nil
}

func requireString(obj gjson.Result, name string) error {
	v, err := field(obj, name)
	if err != nil {
		return err
	}
	if v.Type != gjson.String {
		return &Error{Field: name, Reason: "must be a string"}
	}
	return nil
}

// optionalString accepts an absent field; a present one must be a string
// (null included in "wrong type").
func optionalString(obj gjson.Result, name string) error {
	if !obj.Get(gjson.Escape(name)).Exists() {
		return nil
	}
	return requireString(obj, name)
}

func requireIP(obj gjson.Result, name string) error {
	if err := requireString(obj, name); err != nil {
		return err
	}
	if !IsValidIP(obj.Get(gjson.Escape(name)).Str) {
		return &Error{Field: name, Reason: "not a valid IP address"}
	}
	return nil
}

func requireBool(obj gjson.Result, name string) error {
	v, err := field(obj, name)
	if err != nil {
		return err
	}
	if !v.IsBool() {
		return &Error{Field: name, Reason: "must be a boolean"}
	}
	return nil
}

func requireNumberIn(obj gjson.Result, name string, min, max float64) error {
	v, err := field(obj, name)
	if err != nil {
		return err
	}
	if v.Type != gjson.Number {
		return &Error{Field: name, Reason: "must be a number"}
	}
	if v.Num < min || v.Num > max {
		return &Error{Field: name, Reason: fmt.Sprintf("out of range [%g, %g]", min, max)}
	}
	return nil
}

func requireStringArray(obj gjson.Result, name string) error {
	v, err := field(obj, name)
	if err != nil {
		return err
	}
	if !v.IsArray() {
		return &Error{Field: name, Reason: "must be an array"}
	}
	for i, el := range v.Array() {
		if el.Type != gjson.String {
			return &Error{Field: fmt.Sprintf("%s[%d]", name, i), Reason: "must be a string"}
		}
	}
	return nil
}

// uniqueKeys rejects any object, at any depth, that repeats a key. gjson
// reads the first occurrence while json.Unmarshal keeps the last and
// matches names case-insensitively, so a repeat would decode a value that
// was never checked.
func uniqueKeys(v gjson.Result, path string) error {
	var err error
	switch {
	case v.IsObject():
		seen := make(map[string]bool)
		v.ForEach(func(key, val gjson.Result) bool {
			name := key.Str
			if path != "" {
				name = path + "." + key.Str
			}
			folded := strings.ToLower(strings.ToUpper(key.Str))
			if seen[folded] {
				err = &Error{Field: name, Reason: "duplicate key"}
				return false
			}
			seen[folded] = true
			err = uniqueKeys(val, name)
			return err == nil
		})
	case v.IsArray():
		i := 0
		v.ForEach(func(_, val gjson.Result) bool {
			err = uniqueKeys(val, fmt.Sprintf("%s[%d]", path, i))
			i++
			return err == nil
		})
	}
	return err
}
