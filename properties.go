// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daigo

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PropertySet is a bag of name->value configuration pairs, as spec'd
// for the BP engine's configuration (spec.md §6): unknown keys are
// accepted silently; values may be supplied as native types or as
// strings to be parsed on demand. Mirrors the teacher's config.go
// struct-of-options shape, but kept dynamic because the engine's
// configuration surface (spec.md's table in §4.3) is itself described
// as a property bag, not a fixed struct.
type PropertySet map[string]interface{}

// NewPropertySet builds a PropertySet from alternating key, value
// pairs, for convenient literal construction in tests and the CLI.
func NewPropertySet(kv ...interface{}) PropertySet {
	ps := make(PropertySet, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic("daigo: NewPropertySet: keys must be strings")
		}
		ps[key] = kv[i+1]
	}
	return ps
}

// Require returns an error of kind NotSpecified if key is absent.
func (ps PropertySet) Require(key string) error {
	if _, ok := ps[key]; !ok {
		return errNotSpecified(key)
	}
	return nil
}

// Float64 returns key parsed as a float64, accepting either a native
// float64/int or a numeric string.
func (ps PropertySet) Float64(key string) (float64, error) {
	v, ok := ps[key]
	if !ok {
		return 0, errNotSpecified(key)
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, wrap(err, "property %q is not a valid float64", key)
		}
		return f, nil
	default:
		return 0, errInternal(fmt.Sprintf("property %q has unsupported type %T", key, v))
	}
}

// Int returns key parsed as an int, accepting either a native
// int/float64 or a numeric string.
func (ps PropertySet) Int(key string) (int, error) {
	v, ok := ps[key]
	if !ok {
		return 0, errNotSpecified(key)
	}
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		return int(t), nil
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, wrap(err, "property %q is not a valid int", key)
		}
		return n, nil
	default:
		return 0, errInternal(fmt.Sprintf("property %q has unsupported type %T", key, v))
	}
}

// Bool returns key parsed as a bool, accepting either a native bool
// or a boolean-ish string ("true"/"false"/"1"/"0").
func (ps PropertySet) Bool(key string) (bool, error) {
	v, ok := ps[key]
	if !ok {
		return false, errNotSpecified(key)
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			return false, wrap(err, "property %q is not a valid bool", key)
		}
		return b, nil
	default:
		return false, errInternal(fmt.Sprintf("property %q has unsupported type %T", key, v))
	}
}

// String returns key's value rendered as a string.
func (ps PropertySet) String(key string) (string, error) {
	v, ok := ps[key]
	if !ok {
		return "", errNotSpecified(key)
	}
	return fmt.Sprintf("%v", v), nil
}

// Canonical renders the set as a deterministic "key=value,..." string
// with keys sorted ascending, used by identify() for logging and test
// fixtures.
func (ps PropertySet) Canonical() string {
	keys := make([]string, 0, len(ps))
	for k := range ps {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, ps[k])
	}
	return strings.Join(parts, ",")
}
