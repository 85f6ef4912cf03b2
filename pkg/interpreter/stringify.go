package interpreter

import (
	"fmt"
	"strconv"
	"strings"

	"roadman/interpreter-go/pkg/runtime"
)

// FormatValue renders a runtime value the way say displays it: numbers
// always carry an explicit fractional part (120 renders as 120.0), strings
// render unquoted, booleans lowercase, lists recursively with the same
// rules applied to elements.
func FormatValue(value runtime.Value) string {
	switch v := value.(type) {
	case runtime.NumberValue:
		return formatNumber(v.Val)
	case runtime.StringValue:
		return v.Val
	case runtime.BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case runtime.NilValue:
		return "nil"
	case *runtime.ListValue:
		parts := make([]string, 0, len(v.Elements))
		for _, el := range v.Elements {
			parts = append(parts, FormatValue(el))
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case *runtime.FunctionValue:
		return fmt.Sprintf("<fam %s>", v.Name())
	case runtime.NativeFunctionValue:
		return fmt.Sprintf("<native fam %s>", v.Name)
	default:
		panic(fmt.Sprintf("interpreter: unhandled value kind %s", value.Kind()))
	}
}

func formatNumber(val float64) string {
	s := strconv.FormatFloat(val, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
