package luatable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/gopher-lua/ast"
	"github.com/yuin/gopher-lua/parse"
)

// MaxDepth bounds table nesting.
const MaxDepth = 64

var (
	// ErrSyntax is returned when the text is not a valid Lua expression.
	ErrSyntax = errors.New("malformed table literal")
	// ErrNotLiteral is returned when the text holds more than a single expression.
	ErrNotLiteral = errors.New("not a single literal")
	// ErrUnsupportedValue is returned for expressions other than literals and tables.
	ErrUnsupportedValue = errors.New("unsupported value type")
	// ErrUnsupportedKey is returned for table keys that are not strings, numbers or booleans.
	ErrUnsupportedKey = errors.New("unsupported table key")
	// ErrTooDeep is returned when tables nest deeper than MaxDepth.
	ErrTooDeep = errors.New("table nesting too deep")
)

// Decode parses a Lua literal (usually a table constructor) into a Value.
// The text is only parsed, never executed: anything other than nil,
// booleans, numbers, strings and nested tables is rejected.
func Decode(src string) (Value, error) {
	chunk, err := parse.Parse(strings.NewReader("return "+src), "<table>")
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	if len(chunk) != 1 {
		return Value{}, ErrNotLiteral
	}
	ret, ok := chunk[0].(*ast.ReturnStmt)
	if !ok || len(ret.Exprs) != 1 {
		return Value{}, ErrNotLiteral
	}

	return convert(ret.Exprs[0], 0)
}

// DecodeTable is Decode for text that must hold a table.
func DecodeTable(src string) (*Table, error) {
	v, err := Decode(src)
	if err != nil {
		return nil, err
	}
	t, ok := v.AsTable()
	if !ok {
		return nil, fmt.Errorf("%w: got %s, want table", ErrUnsupportedValue, v.Kind())
	}
	return t, nil
}

func convert(expr ast.Expr, depth int) (Value, error) {
	switch e := expr.(type) {
	case *ast.NilExpr:
		return Value{}, nil
	case *ast.TrueExpr:
		return Bool(true), nil
	case *ast.FalseExpr:
		return Bool(false), nil
	case *ast.StringExpr:
		return String(e.Value), nil
	case *ast.NumberExpr:
		f, err := parseNumber(e.Value)
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case *ast.UnaryMinusOpExpr:
		n, ok := e.Expr.(*ast.NumberExpr)
		if !ok {
			return Value{}, fmt.Errorf("%w: negated %T", ErrUnsupportedValue, e.Expr)
		}
		f, err := parseNumber(n.Value)
		if err != nil {
			return Value{}, err
		}
		return Number(-f), nil
	case *ast.TableExpr:
		if depth >= MaxDepth {
			return Value{}, ErrTooDeep
		}
		t, err := convertTable(e, depth+1)
		if err != nil {
			return Value{}, err
		}
		return TableValue(t), nil
	default:
		return Value{}, fmt.Errorf("%w: %T at line %d", ErrUnsupportedValue, expr, expr.Line())
	}
}

func convertTable(e *ast.TableExpr, depth int) (*Table, error) {
	t := NewTable()
	for _, field := range e.Fields {
		v, err := convert(field.Value, depth)
		if err != nil {
			return nil, err
		}

		if field.Key == nil {
			t.Append(v)
			continue
		}

		key, err := convert(field.Key, depth)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedKey, err)
		}
		switch key.Kind() {
		case KindString:
			s, _ := key.AsString()
			t.Set(s, v)
		case KindNumber:
			if i, ok := key.AsInt(); ok {
				t.SetIndex(i, v)
			} else {
				t.Set(key.String(), v)
			}
		case KindBool:
			t.Set(key.String(), v)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedKey, key.Kind())
		}
	}
	return t, nil
}

func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	unsigned := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		i, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: number %q", ErrSyntax, raw)
		}
		return float64(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: number %q", ErrSyntax, raw)
	}
	return f, nil
}
