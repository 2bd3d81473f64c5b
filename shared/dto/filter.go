package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq      = "eq"
	FilterOperatorIn      = "in"
	FilterOperatorNotEq   = "not_eq"
	FilterOperatorLess    = "lt"
	FilterOperatorGreater = "gt"
	FilterIsNull          = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

const argCurrentStatus = "current_status"

var comparisons = map[string]string{
	FilterOperatorEq:      "=",
	FilterOperatorNotEq:   "!=",
	FilterOperatorLess:    "<",
	FilterOperatorGreater: ">",
}

type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq in not_eq lt gt is_null"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

// GetWhereClause renders the filter as a sqlx named-parameter predicate.
// An unknown operator renders nothing.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column, argName := f.column(), f.argName()

	if op, ok := comparisons[f.Operator]; ok {
		args[argName] = f.Value

		return fmt.Sprintf("%s %s :%s", column, op, argName), args
	}

	switch f.Operator {
	case FilterOperatorIn:
		values := reflect.ValueOf(f.Value)
		if values.Kind() != reflect.Array && values.Kind() != reflect.Slice {
			args[argName] = f.Value

			return fmt.Sprintf("%s IN (:%s)", column, argName), args
		}

		named := make([]string, values.Len())

		for idx := range values.Len() {
			name := fmt.Sprintf("%s_%d", argName, idx)
			args[name] = values.Index(idx).Interface()
			named[idx] = ":" + name
		}

		return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", ")), args
	case FilterIsNull:
		return column + " IS NULL", args
	default:
		return "", args
	}
}

type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	whereClause := []string{}

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		whereClause = append(whereClause, where)

		maps.Copy(args, arg)
	}

	if len(whereClause) == 0 {
		return "", args
	}

	return fmt.Sprintf("(%s)", strings.Join(whereClause, " "+f.Operator+" ")), args
}

// AddEq appends an equality filter when value is set. Empty query parameters mean no filter.
func (f *FilterGroup) AddEq(table, field, value string) {
	if value == "" {
		return
	}

	f.Filters = append(f.Filters, Filter{Field: field, Value: value, Operator: FilterOperatorEq, Table: table})
}

// StatusGuard matches one row only while its status is still current. Updates filtered by it
// are compare-and-set writes: zero affected rows means another writer moved the row first.
func StatusGuard(table, idField, id, statusField string, current any) FilterGroup {
	return FilterGroup{
		Operator: FilterGroupOperatorAnd,
		Filters: []any{
			Filter{Field: idField, Value: id, Operator: FilterOperatorEq, Table: table},
			Filter{ArgName: argCurrentStatus, Field: statusField, Value: current, Operator: FilterOperatorEq, Table: table},
		},
	}
}

// Overlap matches rows whose [startField, endField) intersects [start, end).
// Touching intervals do not overlap.
func Overlap(table, startField, endField string, start, end any) FilterGroup {
	return FilterGroup{
		Operator: FilterGroupOperatorAnd,
		Filters: []any{
			Filter{ArgName: "interval_end", Field: startField, Value: end, Operator: FilterOperatorLess, Table: table},
			Filter{ArgName: "interval_start", Field: endField, Value: start, Operator: FilterOperatorGreater, Table: table},
		},
	}
}
