package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

func structValue(v any, bindErr error) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: target must be a non-nil pointer to struct", bindErr)
	}
	return rv.Elem(), nil
}

func tagName(field reflect.StructField, tag string) (string, bool) {
	name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
	if name == "" || name == "-" {
		return "", false
	}
	return name, true
}

func taggedNames(v any, tag string, bindErr error) ([]string, error) {
	rv, err := structValue(v, bindErr)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, field := range reflect.VisibleFields(rv.Type()) {
		if name, ok := tagName(field, tag); ok && field.IsExported() {
			names = append(names, name)
		}
	}
	return names, nil
}

// bindValues copies values into the exported fields carrying tag.
// With onlyZero set, fields that already hold a value are skipped.
func bindValues(v any, tag string, values map[string][]string, onlyZero bool, bindErr error) error {
	rv, err := structValue(v, bindErr)
	if err != nil {
		return err
	}

	for _, field := range reflect.VisibleFields(rv.Type()) {
		if !field.IsExported() || len(field.Index) == 0 {
			continue
		}
		name, ok := tagName(field, tag)
		if !ok {
			continue
		}
		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}

		fv := rv.FieldByIndex(field.Index)
		if onlyZero && !fv.IsZero() {
			continue
		}
		if err := setValue(fv, raw); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, name, err)
		}
	}

	return nil
}

func setValue(field reflect.Value, raw []string) error {
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setValue(field.Elem(), raw)
	}

	if field.Kind() == reflect.Slice {
		slice := reflect.MakeSlice(field.Type(), len(raw), len(raw))
		for i, item := range raw {
			if err := setValue(slice.Index(i), []string{item}); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}

	value := strings.TrimSpace(raw[0])

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw[0])
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q", value)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid number %q", value)
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}

	return nil
}
