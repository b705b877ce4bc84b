package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the env variable pointing at an optional YAML file.
const ConfigFileEnv = "CONFIG_FILE"

var durationType = reflect.TypeOf(time.Duration(0))

// Load hydrates target (a pointer to struct) from the YAML file named by
// CONFIG_FILE, if set, and then from environment variables. Env keys are
// derived from the field path (PARENT_CHILD) unless an `env:"KEY"` tag is
// present; `env:"-"` skips a field.
func Load(target interface{}) error {
	return LoadWithLookup(target, os.Getenv(ConfigFileEnv), os.LookupEnv)
}

// LoadWithLookup is Load with an explicit file path and env lookup.
func LoadWithLookup(target interface{}, path string, lookup func(string) (string, bool)) error {
	if target == nil {
		return errors.New("config: target is nil")
	}
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return errors.New("config: target must be pointer to struct")
	}

	if path != "" {
		if err := loadFile(path, target); err != nil {
			return err
		}
	}
	return populate(val.Elem(), "", lookup)
}

func loadFile(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read file: %w", err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("config: decode yaml %s: %w", path, err)
	}
	return nil
}

func populate(v reflect.Value, prefix string, lookup func(string) (string, bool)) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		meta := t.Field(i)
		if !field.CanSet() {
			continue
		}
		if meta.Anonymous {
			if err := populate(field, prefix, lookup); err != nil {
				return err
			}
			continue
		}

		tag := meta.Tag.Get("env")
		if tag == "-" {
			continue
		}
		key := envKey(prefix, meta.Name)
		if tag != "" {
			key = envKey("", tag)
		}

		if field.Kind() == reflect.Struct && field.Type() != durationType {
			if err := populate(field, key, lookup); err != nil {
				return err
			}
			continue
		}

		raw, ok := lookup(key)
		if !ok {
			continue
		}
		if err := assign(field, strings.TrimSpace(raw)); err != nil {
			return fmt.Errorf("config: parse %s: %w", key, err)
		}
	}
	return nil
}

func envKey(prefix, name string) string {
	name = strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

func assign(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

// HTTPAddress turns "8080" or ":8080" into ":8080", using fallback when port
// is blank.
func HTTPAddress(port, fallback string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		port = fallback
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
