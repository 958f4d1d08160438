package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
)

// applyEnv overrides every field carrying an `env` tag whose variable is set.
// Section structs are walked recursively. It returns the variables applied.
func applyEnv(target interface{}) ([]string, error) {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("env target must be a pointer to a struct, got %T", target)
	}
	var applied []string
	err := walkEnv(v.Elem(), &applied)
	return applied, err
}

func walkEnv(section reflect.Value, applied *[]string) error {
	t := section.Type()
	for i := 0; i < t.NumField(); i++ {
		field, meta := section.Field(i), t.Field(i)

		if field.Kind() == reflect.Struct {
			if err := walkEnv(field, applied); err != nil {
				return err
			}
			continue
		}

		name, ok := meta.Tag.Lookup("env")
		if !ok {
			continue
		}
		raw, set := os.LookupEnv(name)
		if !set {
			continue
		}
		if err := assign(field, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*applied = append(*applied, name)
	}
	return nil
}

// assign parses raw into the field's kind
func assign(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("expected an integer, got %q", raw)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("expected a boolean, got %q", raw)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}
