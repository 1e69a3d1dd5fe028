package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// bindToStruct populates struct fields from a multi-value map keyed by the
// given struct tag. bindErr is the sentinel wrapped into failures so each
// binder reports its own error class.
func bindToStruct(v any, tagName string, values map[string][]string, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		name, skip := fieldName(rt.Field(i), tagName)
		if skip {
			continue
		}
		fieldValues, ok := values[name]
		if !ok || len(fieldValues) == 0 {
			continue
		}

		if err := setValue(field, fieldValues); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, rt.Field(i).Name, err)
		}
	}
	return nil
}

// fieldName resolves the parameter name for a struct field from its tag.
// Untagged fields bind by lowercased field name; "-" skips the field.
func fieldName(field reflect.StructField, tagName string) (name string, skip bool) {
	tag := field.Tag.Get(tagName)
	switch tag {
	case "":
		return strings.ToLower(field.Name), false
	case "-":
		return "", true
	}
	// Strip tag options such as ",omitempty".
	if idx := strings.Index(tag, ","); idx != -1 {
		tag = tag[:idx]
	}
	return tag, false
}

func setValue(field reflect.Value, values []string) error {
	t := field.Type()

	if t.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(t.Elem()))
		}
		return setValue(field.Elem(), values)
	}

	if t.Kind() == reflect.Slice {
		return setSlice(field, values)
	}

	return setScalar(field, values[0])
}

func setScalar(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool value %q", value)
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

func setSlice(field reflect.Value, values []string) error {
	// Single comma-separated value expands into elements, matching the
	// ?tags=a,b form alongside ?tags=a&tags=b.
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}

	slice := reflect.MakeSlice(field.Type(), len(values), len(values))
	for i, value := range values {
		if err := setScalar(slice.Index(i), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	field.Set(slice)
	return nil
}
