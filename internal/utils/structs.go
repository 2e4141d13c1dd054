package utils

import (
	"fmt"
	"reflect"
)

// ColumnTag is the struct tag naming a field's database column.
var ColumnTag = "db"

// StructTagValues lists the column names of a struct in field order.
// Unexported fields and fields tagged "-" or untagged are skipped.
func StructTagValues(input any) []string {

	result := make([]string, 0)
	walkColumns(input, func(column string, _ reflect.Value) {
		result = append(result, column)
	})

	return result

}

// StructToMap maps column names to field values, for squirrel SetMap.
func StructToMap(input any) map[string]any {

	result := make(map[string]any)
	walkColumns(input, func(column string, value reflect.Value) {
		result[column] = value.Interface()
	})

	return result

}

func walkColumns(input any, fn func(column string, value reflect.Value)) {

	value := reflect.ValueOf(input)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}

	if value.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	valueType := value.Type()
	for i := 0; i < value.NumField(); i++ {
		field := valueType.Field(i)
		if field.PkgPath != "" {
			continue
		}

		column := field.Tag.Get(ColumnTag)
		if column == "" || column == "-" {
			continue
		}

		fn(column, value.Field(i))
	}

}

func ErrorWrapOrNil(err error, msg string) error {
	if err == nil {
		return nil
	}

	if msg == "" {
		return err
	}

	return fmt.Errorf("%s: %w", msg, err)

}
