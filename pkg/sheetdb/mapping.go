package sheetdb

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

const tagName = "sheetdb"

func recordFromValue(v interface{}) (Record, error) {
	switch r := v.(type) {
	case Record:
		return copyRecord(r), nil
	case map[string]string:
		return copyRecord(r), nil
	case map[string]interface{}:
		out := make(Record, len(r))
		for k, val := range r {
			out[k] = fmt.Sprint(val)
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: got nil %T", ErrRecordType, v)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %T", ErrRecordType, v)
	}
	return structToRecord(rv), nil
}

func structToRecord(v reflect.Value) Record {
	t := v.Type()
	out := make(Record, t.NumField())

	for i := 0; i < v.NumField(); i++ {
		fieldType := t.Field(i)
		name, ok := columnName(fieldType)
		if !ok {
			continue
		}
		out[name] = formatValue(v.Field(i))
	}
	return out
}

// columnName returns the column a struct field maps to. Unexported fields
// and fields tagged "-" are skipped.
func columnName(f reflect.StructField) (string, bool) {
	if f.PkgPath != "" {
		return "", false
	}
	tag := f.Tag.Get(tagName)
	switch tag {
	case "-":
		return "", false
	case "":
		return f.Name, true
	default:
		return tag, true
	}
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return ""
		}
		return formatValue(v.Elem())
	case reflect.Struct, reflect.Slice, reflect.Map:
		if _, ok := v.Interface().(fmt.Stringer); ok {
			return fmt.Sprint(v.Interface())
		}
		data, err := json.Marshal(v.Interface())
		if err != nil {
			return fmt.Sprint(v.Interface())
		}
		return string(data)
	default:
		return fmt.Sprint(v.Interface())
	}
}

func copyRecord(r map[string]string) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func scanRecords(records []Record, dest interface{}) error {
	destVal := reflect.ValueOf(dest)
	if destVal.Kind() != reflect.Ptr || destVal.IsNil() || destVal.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("dest must be a pointer to a slice")
	}

	sliceVal := destVal.Elem()
	elemType := sliceVal.Type().Elem()

	for _, rec := range records {
		elem := reflect.New(elemType).Elem()
		if err := scanRecord(rec, elem); err != nil {
			return err
		}
		sliceVal = reflect.Append(sliceVal, elem)
	}

	destVal.Elem().Set(sliceVal)
	return nil
}

func scanRecord(rec Record, dest reflect.Value) error {
	if dest.Kind() == reflect.Map && dest.Type().Key().Kind() == reflect.String && dest.Type().Elem().Kind() == reflect.String {
		m := reflect.MakeMapWithSize(dest.Type(), len(rec))
		for k, v := range rec {
			m.SetMapIndex(reflect.ValueOf(k), reflect.ValueOf(v).Convert(dest.Type().Elem()))
		}
		dest.Set(m)
		return nil
	}

	if dest.Kind() == reflect.Ptr {
		dest.Set(reflect.New(dest.Type().Elem()))
		dest = dest.Elem()
	}
	if dest.Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a struct, got %s", dest.Type())
	}

	t := dest.Type()
	for i := 0; i < dest.NumField(); i++ {
		fieldType := t.Field(i)
		name, ok := columnName(fieldType)
		if !ok {
			continue
		}
		value, ok := rec[name]
		if !ok {
			continue
		}
		if err := setField(dest.Field(i), value); err != nil {
			return fmt.Errorf("failed to set field %s: %w", fieldType.Name, err)
		}
	}

	return nil
}

// setField stores a cell value into a struct field. Empty cells leave
// non-string fields at their zero value.
func setField(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}
	if value == "" && field.Kind() != reflect.String {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Ptr:
		ptr := reflect.New(field.Type().Elem())
		if err := setField(ptr.Elem(), value); err != nil {
			return err
		}
		field.Set(ptr)
	case reflect.Struct, reflect.Slice, reflect.Map:
		return json.Unmarshal([]byte(value), field.Addr().Interface())
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}

	return nil
}
