package metadata

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/thoreinstein/distcheck/internal/errors"
	"github.com/thoreinstein/distcheck/internal/validator"
	"github.com/thoreinstein/distcheck/internal/version"
)

// ErrMalformedDocument indicates the decoded input is not an object.
var ErrMalformedDocument = errors.New("malformed document")

// asciiPunctuation lists the ASCII punctuation characters.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Option configures a Validator.
type Option func(*Validator)

// WithStrict makes fields outside the schema a violation instead of being ignored.
func WithStrict(strict bool) Option {
	return func(v *Validator) {
		v.strict = strict
	}
}

// Validator checks documents against the schema. It holds no per-call state
// and is safe for concurrent use.
type Validator struct {
	strict bool
}

// New creates a new Validator with the given options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks doc against the schema and returns every violation found.
// doc must be a decoded object; any other value returns an error matching
// ErrMalformedDocument. doc is never modified.
func (v *Validator) Validate(doc any) (*validator.Result, error) {
	fields, ok := doc.(map[string]any)
	if !ok {
		return nil, errors.Wrapf(ErrMalformedDocument, "expected an object, got %s", typeName(doc))
	}

	result := &validator.Result{}

	for _, rule := range schema {
		value, present := fields[rule.Name]
		if !present {
			if rule.Required {
				result.AddViolation(validator.CodeMissingField, rule.Name, "is required", nil)
			}
			continue
		}
		checkShape(result, rule.Name, nil, rule.Shape, value)
	}

	if v.strict {
		for _, name := range sortedKeys(fields) {
			if _, known := schemaIndex[name]; !known {
				result.AddViolation(validator.CodeUnknownField, name, "is not a recognized field", nil)
			}
		}
	}

	return result, nil
}

// location identifies an element nested inside a field.
type location map[string]string

func (l location) withIndex(i int) location {
	return l.with("index", strconv.Itoa(i))
}

func (l location) withKey(k string) location {
	if prev, ok := l["key"]; ok {
		k = prev + "." + k
	}
	return l.with("key", k)
}

func (l location) with(k, v string) location {
	next := make(location, len(l)+1)
	for kk, vv := range l {
		next[kk] = vv
	}
	next[k] = v
	return next
}

func addIssue(result *validator.Result, code validator.Code, field string, at location, msg string, value any) {
	result.Add(validator.Issue{
		Severity: validator.SeverityError,
		Code:     code,
		Field:    field,
		Message:  msg,
		Value:    value,
		Context:  at,
	})
}

func checkShape(result *validator.Result, field string, at location, shape Shape, value any) {
	switch shape.Kind {
	case KindAny:
		return

	case KindString:
		s, ok := value.(string)
		if !ok {
			addIssue(result, validator.CodeWrongType, field, at, wrongType("a string", value), value)
			return
		}
		if msg := applyCheck(shape.Check, s); msg != "" {
			addIssue(result, validator.CodeInvalidValue, field, at, msg, s)
		}

	case KindList:
		items, ok := value.([]any)
		if !ok {
			addIssue(result, validator.CodeWrongType, field, at, wrongType("a list", value), value)
			return
		}
		for i, item := range items {
			checkShape(result, field, at.withIndex(i), *shape.Elem, item)
		}

	case KindMap:
		entries, ok := asMapping(value)
		if !ok {
			addIssue(result, validator.CodeWrongType, field, at, wrongType("a mapping", value), value)
			return
		}
		for _, e := range entries {
			key, isString := e.key.(string)
			if !isString {
				addIssue(result, validator.CodeWrongType, field, at,
					wrongType("a string key", e.key), e.key)
				continue
			}
			keyAt := at.withKey(key)
			if msg := applyCheck(shape.Key, key); msg != "" {
				addIssue(result, validator.CodeInvalidValue, field, keyAt, "key "+msg, key)
			}
			checkShape(result, field, keyAt, *shape.Elem, e.value)
		}
	}
}

// applyCheck returns an empty string when s satisfies c, otherwise the
// violation message.
func applyCheck(c Check, s string) string {
	switch c.Kind {
	case CheckEquals:
		if s != c.Arg {
			return fmt.Sprintf("must be %q", c.Arg)
		}
	case CheckExcludes:
		if i := strings.IndexAny(s, c.Arg); i >= 0 {
			r, _ := utf8.DecodeRuneInString(s[i:])
			return fmt.Sprintf("must not contain %q", r)
		}
	case CheckMaxLen:
		if utf8.RuneCountInString(s) > c.Limit {
			return fmt.Sprintf("must be at most %d characters", c.Limit)
		}
	case CheckCharset:
		for _, r := range s {
			if !allowedExtraRune(r, c.Arg) {
				return fmt.Sprintf("contains disallowed character %q", r)
			}
		}
	case CheckVersion:
		if _, err := version.Parse(s); err != nil {
			return err.Error()
		}
	case CheckPredicate:
		if _, err := version.ParsePredicate(s); err != nil {
			return err.Error()
		}
	}
	return ""
}

func allowedExtraRune(r rune, reserved string) bool {
	if strings.ContainsRune(reserved, r) {
		return false
	}
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	default:
		return strings.ContainsRune(asciiPunctuation, r)
	}
}

type mappingEntry struct {
	key   any
	value any
}

// asMapping returns the entries of an object in a stable key order. YAML
// input may produce mappings with non-string keys, which are kept so the
// caller can report them.
func asMapping(v any) ([]mappingEntry, bool) {
	switch m := v.(type) {
	case map[string]any:
		entries := make([]mappingEntry, 0, len(m))
		for _, k := range sortedKeys(m) {
			entries = append(entries, mappingEntry{key: k, value: m[k]})
		}
		return entries, true
	case map[any]any:
		entries := make([]mappingEntry, 0, len(m))
		for k, val := range m {
			entries = append(entries, mappingEntry{key: k, value: val})
		}
		sort.Slice(entries, func(i, j int) bool {
			return fmt.Sprint(entries[i].key) < fmt.Sprint(entries[j].key)
		})
		return entries, true
	default:
		return nil, false
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func wrongType(want string, got any) string {
	return fmt.Sprintf("must be %s, got %s", want, typeName(got))
}

// typeName names the document-level type of a decoded value.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, float32, int, int64, uint64:
		return "number"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}
