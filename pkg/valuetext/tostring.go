package valuetext

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/goliatone/go-domtemplate/pkg/value"
)

const objectText = "[object Object]"

// ToString is the generic to-string conversion used for leaves and for
// containers reached twice. Arrays join their elements with commas (nullish
// elements and arrays already being joined render empty), objects render as
// "[object Object]", numbers use the shortest round-trip form and functions
// render as "func <name>".
func ToString(v any) string {
	return toString(v, nil)
}

func toString(v any, joining map[value.Ref]bool) string {
	switch typed := v.(type) {
	case nil:
		return "null"
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.FormatInt(int64(typed), 10)
	case int8:
		return strconv.FormatInt(int64(typed), 10)
	case int16:
		return strconv.FormatInt(int64(typed), 10)
	case int32:
		return strconv.FormatInt(int64(typed), 10)
	case int64:
		return strconv.FormatInt(typed, 10)
	case uint:
		return strconv.FormatUint(uint64(typed), 10)
	case uint8:
		return strconv.FormatUint(uint64(typed), 10)
	case uint16:
		return strconv.FormatUint(uint64(typed), 10)
	case uint32:
		return strconv.FormatUint(uint64(typed), 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case uintptr:
		return strconv.FormatUint(uint64(typed), 10)
	case float32:
		return formatNumber(float64(typed), 32)
	case float64:
		return formatNumber(typed, 64)
	case json.Number:
		return typed.String()
	case *big.Int:
		if typed == nil {
			return "null"
		}
		return typed.String()
	}

	switch value.KindOf(v) {
	case value.KindNull:
		return "null"
	case value.KindUndefined:
		return "undefined"
	case value.KindSymbol:
		return v.(value.Symbol).String()
	case value.KindFunc:
		return funcText(v)
	case value.KindArray:
		return joinArray(v, joining)
	case value.KindObject:
		return objectText
	}

	switch typed := v.(type) {
	case error:
		return typed.Error()
	case fmt.Stringer:
		return typed.String()
	}
	return fmt.Sprint(v)
}

func joinArray(v any, joining map[value.Ref]bool) string {
	ref, hasRef := value.Identity(v)
	if hasRef {
		if joining[ref] {
			return ""
		}
		if joining == nil {
			joining = make(map[value.Ref]bool)
		}
		joining[ref] = true
		defer delete(joining, ref)
	}

	items, _ := value.AsArray(v)
	parts := make([]string, len(items))
	for i, item := range items {
		if value.IsNullish(item) {
			continue
		}
		parts[i] = toString(item, joining)
	}
	return strings.Join(parts, ",")
}

func funcText(v any) string {
	rv := reflect.ValueOf(v)
	if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
		return "func " + fn.Name()
	}
	return "func " + rv.Type().String()
}

// formatNumber renders f the way dynamic languages print numbers: integers
// without a fraction, plain decimals between 1e-6 and 1e21, exponent notation
// outside that range.
func formatNumber(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}

	formatted := strconv.FormatFloat(f, 'e', -1, bitSize)
	mantissa, exponent, found := strings.Cut(formatted, "e")
	if !found || exponent == "" {
		return formatted
	}
	sign, digits := exponent[:1], strings.TrimLeft(exponent[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
