// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// FlagBinder is implemented by field types that register their own
// flags. [BindFlags] calls AddFlags for them instead of reading tags.
type FlagBinder interface {
	AddFlags(flagSet *pflag.FlagSet)
}

// FlagsFromParams returns a flag set bound to params, a pointer to a
// tagged struct. A params struct that cannot be bound is a programming
// error, so it panics.
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers a flag on flagSet for every tagged field of the
// struct params points to:
//
//	Offset uint64 `flag:"offset,o" desc:"window offset" default:"0"`
//
// The flag tag is the long name with an optional one-letter shorthand;
// desc is the help text; default is parsed as the field's type.
// Untagged and unexported fields are ignored.
//
// Supported field types are string, bool, int, int64, uint64, float64,
// [time.Duration] and []string. uint64 values accept 0x and 0o
// prefixes, which suits byte offsets.
//
// Embedded structs are bound recursively, so params structs compose
// from [ConfigParams] and [JSONOutput]. A struct field whose pointer
// implements [FlagBinder] binds itself.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(value.Elem(), flagSet)
}

// flagSpec is what the struct tags of one field say about its flag.
type flagSpec struct {
	name         string
	shorthand    string
	usage        string
	defaultValue string
}

func bindStruct(value reflect.Value, flagSet *pflag.FlagSet) error {
	structType := value.Type()
	for i := range structType.NumField() {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldValue := value.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if binder, ok := fieldValue.Addr().Interface().(FlagBinder); ok {
				binder.AddFlags(flagSet)
				continue
			}
			if field.Anonymous {
				if err := bindStruct(fieldValue, flagSet); err != nil {
					return fmt.Errorf("embedded %s: %w", field.Name, err)
				}
				continue
			}
		}

		tag := field.Tag.Get("flag")
		if tag == "" {
			continue
		}
		name, shorthand, _ := strings.Cut(tag, ",")
		spec := flagSpec{
			name:         name,
			shorthand:    shorthand,
			usage:        field.Tag.Get("desc"),
			defaultValue: field.Tag.Get("default"),
		}
		if err := bindField(fieldValue, flagSet, spec); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

func bindField(field reflect.Value, flagSet *pflag.FlagSet, spec flagSpec) error {
	switch target := field.Addr().Interface().(type) {
	case *string:
		return define(target, spec, parseString, flagSet.StringVarP)
	case *bool:
		return define(target, spec, strconv.ParseBool, flagSet.BoolVarP)
	case *int:
		return define(target, spec, strconv.Atoi, flagSet.IntVarP)
	case *int64:
		return define(target, spec, parseInt64, flagSet.Int64VarP)
	case *uint64:
		return define(target, spec, parseUint64, flagSet.Uint64VarP)
	case *float64:
		return define(target, spec, parseFloat64, flagSet.Float64VarP)
	case *time.Duration:
		return define(target, spec, time.ParseDuration, flagSet.DurationVarP)
	case *[]string:
		return define(target, spec, parseList, flagSet.StringSliceVarP)
	default:
		return fmt.Errorf("unsupported type %s for flag --%s", field.Type(), spec.name)
	}
}

// define parses the default (an empty tag is the zero value) and
// registers the flag through one of pflag's VarP functions.
func define[T any](target *T, spec flagSpec, parse func(string) (T, error), register func(*T, string, string, T, string)) error {
	var defaultValue T
	if spec.defaultValue != "" {
		parsed, err := parse(spec.defaultValue)
		if err != nil {
			return fmt.Errorf("default for --%s: %w", spec.name, err)
		}
		defaultValue = parsed
	}
	register(target, spec.name, spec.shorthand, defaultValue, spec.usage)
	return nil
}

func parseString(s string) (string, error) { return s, nil }

func parseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

func parseUint64(s string) (uint64, error) { return strconv.ParseUint(s, 0, 64) }

func parseFloat64(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

func parseList(s string) ([]string, error) { return strings.Split(s, ","), nil }
