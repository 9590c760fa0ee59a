// Package validate checks decoded request payloads against declarative
// schemas. A schema maps field names to an ordered list of rules and one
// interpreter (Check) evaluates every schema.
package validate

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/baharkarakas/ong-backend/internal/apperr"
)

const (
	failedPrefix = "Validation Failed: "
	noBody       = failedPrefix + "No body submitted"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

type RuleKind int

const (
	KindRequired RuleKind = iota + 1
	KindNotEmpty
	KindString
	KindEmail
	KindInt
	KindRange
	KindMinLength
	KindMaxLength
)

type Rule struct {
	Kind     RuleKind
	Min, Max int64
}

func Required() Rule            { return Rule{Kind: KindRequired} }
func NotEmpty() Rule            { return Rule{Kind: KindNotEmpty} }
func String() Rule              { return Rule{Kind: KindString} }
func Email() Rule               { return Rule{Kind: KindEmail} }
func Int() Rule                 { return Rule{Kind: KindInt} }
func Range(min, max int64) Rule { return Rule{Kind: KindRange, Min: min, Max: max} }
func MinLength(n int) Rule      { return Rule{Kind: KindMinLength, Min: int64(n)} }
func MaxLength(n int) Rule      { return Rule{Kind: KindMaxLength, Max: int64(n)} }

type Schema map[string][]Rule

// Optional returns a copy of s for partial payloads: absent fields are
// allowed, present ones must still be non-empty.
func (s Schema) Optional() Schema {
	out := make(Schema, len(s))
	for field, rules := range s {
		kept := make([]Rule, len(rules))
		for i, r := range rules {
			if r.Kind == KindRequired {
				r = NotEmpty()
			}
			kept[i] = r
		}
		out[field] = kept
	}
	return out
}

// Check validates payload against schema and returns payload itself on
// success. A nil schema lets any payload through.
func Check(schema Schema, payload map[string]any) (map[string]any, error) {
	if schema == nil {
		return payload, nil
	}
	if len(payload) == 0 {
		return nil, apperr.Validation(noBody)
	}

	fields := make([]string, 0, len(schema))
	for f := range schema {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var errs Errs
	for _, field := range fields {
		rules := schema[field]
		v, present := payload[field]
		if !present {
			if hasRequired(rules) {
				errs = append(errs, ErrField{Field: field, Msg: "should not be empty"})
			}
			continue
		}
		for _, r := range rules {
			if ef := r.apply(field, v); ef != nil {
				errs = append(errs, *ef)
			}
		}
	}
	if len(errs) > 0 {
		return nil, apperr.Validation(failedPrefix + errs.Error())
	}
	return payload, nil
}

func hasRequired(rules []Rule) bool {
	for _, r := range rules {
		if r.Kind == KindRequired {
			return true
		}
	}
	return false
}

func (r Rule) apply(field string, v any) *ErrField {
	switch r.Kind {
	case KindRequired, KindNotEmpty:
		return requiredRule(field, v)
	case KindString:
		if _, ok := v.(string); !ok {
			return &ErrField{Field: field, Msg: "must be a string"}
		}
	case KindEmail:
		s, ok := v.(string)
		if !ok || !isEmail(s) {
			return &ErrField{Field: field, Msg: "must be an email"}
		}
	case KindInt:
		if _, ok := asInt(v); !ok {
			return &ErrField{Field: field, Msg: "must be an integer number"}
		}
	case KindRange:
		n, ok := asFloat(v)
		if !ok {
			return &ErrField{Field: field, Msg: "must be a number"}
		}
		if n < float64(r.Min) {
			return &ErrField{Field: field, Msg: "must not be less than " + strconv.FormatInt(r.Min, 10)}
		}
		if n > float64(r.Max) {
			return &ErrField{Field: field, Msg: "must not be greater than " + strconv.FormatInt(r.Max, 10)}
		}
	case KindMinLength:
		s, ok := v.(string)
		if !ok || int64(utf8.RuneCountInString(s)) < r.Min {
			return &ErrField{Field: field, Msg: "must be longer than or equal to " + strconv.FormatInt(r.Min, 10) + " characters"}
		}
	case KindMaxLength:
		s, ok := v.(string)
		if !ok || int64(len(s)) > r.Max {
			return &ErrField{Field: field, Msg: "must be shorter than or equal to " + strconv.FormatInt(r.Max, 10) + " bytes"}
		}
	}
	return nil
}

func requiredRule(field string, v any) *ErrField {
	switch x := v.(type) {
	case nil:
		return &ErrField{Field: field, Msg: "should not be empty"}
	case string:
		if strings.TrimSpace(x) == "" {
			return &ErrField{Field: field, Msg: "should not be empty"}
		}
	}
	return nil
}

// syntax backs the Email rule.
var syntax = validator.New()

func isEmail(s string) bool {
	return syntax.Var(s, "email") == nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asInt(v any) (int64, bool) {
	if n, ok := v.(json.Number); ok {
		i, err := n.Int64()
		return i, err == nil
	}
	f, ok := asFloat(v)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}
