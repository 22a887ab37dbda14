package metadata

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/distcheck/internal/errors"
	"github.com/thoreinstein/distcheck/internal/validator"
)

// minimalDoc returns a fresh minimal valid document.
func minimalDoc() map[string]any {
	return map[string]any{
		"Metadata-Version": "2.0",
		"Name":             "pkg",
		"Version":          "1.0",
		"Summary":          "s",
	}
}

func mustValidate(t *testing.T, v *Validator, doc any) *validator.Result {
	t.Helper()
	result, err := v.Validate(doc)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestValidate_MinimalDocument(t *testing.T) {
	result := mustValidate(t, New(), minimalDoc())
	assert.True(t, result.Valid())
	assert.Empty(t, result.Issues)
}

func TestValidate_InvalidVersionIsSingleViolation(t *testing.T) {
	doc := minimalDoc()
	doc["Version"] = "???"

	result := mustValidate(t, New(), doc)
	require.False(t, result.Valid())
	require.Len(t, result.Issues, 1)

	issue := result.Issues[0]
	assert.Equal(t, "Version", issue.Field)
	assert.Equal(t, validator.CodeInvalidValue, issue.Code)
	assert.Equal(t, `invalid version number "???"`, issue.Message)
}

func TestValidate_DateLikeVersionsRejected(t *testing.T) {
	doc := minimalDoc()
	doc["Version"] = "2013.1"
	doc["Requires-Dists"] = []any{"foo (>=2013.1)"}

	result := mustValidate(t, New(), doc)
	require.Len(t, result.Issues, 2)
	assert.Equal(t, "Version", result.Issues[0].Field)
	assert.Contains(t, result.Issues[0].Message, "huge major version number")
	assert.Equal(t, "Requires-Dists", result.Issues[1].Field)
	assert.Equal(t, "foo (>=2013.1)", result.Issues[1].Value)
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	for _, field := range []string{"Metadata-Version", "Name", "Version", "Summary"} {
		t.Run(field, func(t *testing.T) {
			doc := minimalDoc()
			delete(doc, field)

			result := mustValidate(t, New(), doc)
			assert.False(t, result.Valid())
			issues := result.ForField(field)
			require.Len(t, issues, 1)
			assert.Equal(t, validator.CodeMissingField, issues[0].Code)
		})
	}
}

func TestValidate_EmptyDocumentReportsEveryRequiredField(t *testing.T) {
	result := mustValidate(t, New(), map[string]any{})
	require.Len(t, result.Issues, 4)
	for _, issue := range result.Issues {
		assert.Equal(t, validator.CodeMissingField, issue.Code)
	}
}

func TestValidate_OptionalFieldsMayBeAbsent(t *testing.T) {
	for _, rule := range Schema() {
		if rule.Required {
			continue
		}
		_, present := minimalDoc()[rule.Name]
		assert.False(t, present, rule.Name)
	}
	assert.True(t, mustValidate(t, New(), minimalDoc()).Valid())
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		value     any
		wantCodes []validator.Code
	}{
		{"version ok", "Version", "1.0.0", nil},
		{"version garbage", "Version", "1.0.0abc!", []validator.Code{validator.CodeInvalidValue}},
		{"version not a string", "Version", json.Number("1.0"), []validator.Code{validator.CodeWrongType}},
		{"metadata version mismatch", "Metadata-Version", "1.2", []validator.Code{validator.CodeInvalidValue}},
		{"name with slash", "Name", "a/b", []validator.Code{validator.CodeInvalidValue}},
		{"name with hyphen", "Name", "a-b", nil},
		{"summary wrong type", "Summary", true, []validator.Code{validator.CodeWrongType}},
		{"description", "Description", "Long text\n\nwith *ReST*", nil},
		{"email is not verified", "Author-Email", "not an email", nil},
		{"keywords", "Keywords", []any{"a", "b"}, nil},
		{"keywords not a list", "Keywords", "a,b", []validator.Code{validator.CodeWrongType}},
		{"keywords bad element", "Keywords", []any{"a", json.Number("1")}, []validator.Code{validator.CodeWrongType}},
		{"classifiers null", "Classifiers", nil, []validator.Code{validator.CodeWrongType}},
		{"requires ok", "Requires-Dists", []any{"foo (>=1.0)", "bar"}, nil},
		{"requires bad", "Requires-Dists", []any{"foo >>> bad"}, []validator.Code{validator.CodeInvalidValue}},
		{"setup requires bad", "Setup-Requires-Dists", []any{"x (>=one)"}, []validator.Code{validator.CodeInvalidValue}},
		{"provides ok", "Provides-Dists", []any{"pkg (1.0)"}, nil},
		{"obsoletes bad", "Obsoletes-Dists", []any{"(1.0)"}, []validator.Code{validator.CodeInvalidValue}},
		{"extras ok", "Provides-Extras", []any{"feature-x", "tls+http2"}, nil},
		{"extras open bracket", "Provides-Extras", []any{"feature[x]"}, []validator.Code{validator.CodeInvalidValue}},
		{"extras comma", "Provides-Extras", []any{"a,b"}, []validator.Code{validator.CodeInvalidValue}},
		{"extras space", "Provides-Extras", []any{"a b"}, []validator.Code{validator.CodeInvalidValue}},
		{"extras non-ascii", "Provides-Extras", []any{"café"}, []validator.Code{validator.CodeInvalidValue}},
		{"uris ok", "URIs", map[string]any{"Home": "https://example.com", "Not a URI": "???"}, nil},
		{
			"uris long label", "URIs",
			map[string]any{"this label is definitely longer than 32": "x"},
			[]validator.Code{validator.CodeInvalidValue},
		},
		{"uris 32 chars", "URIs", map[string]any{"abcdefghijklmnopqrstuvwxyz012345": "x"}, nil},
		{"uris non-string value", "URIs", map[string]any{"Home": json.Number("1")}, []validator.Code{validator.CodeWrongType}},
		{"uris list", "URIs", []any{"https://example.com"}, []validator.Code{validator.CodeWrongType}},
		{
			"extensions ok", "Extensions",
			map[string]any{"test": map[string]any{"a": json.Number("1"), "b": []any{true}, "c": nil}},
			nil,
		},
		{"extensions inner not mapping", "Extensions", map[string]any{"test": "x"}, []validator.Code{validator.CodeWrongType}},
		{"extensions not mapping", "Extensions", []any{}, []validator.Code{validator.CodeWrongType}},
		{"requires python is plain", "Requires-Python", ">=2.5", nil},
		{"requires externals", "Requires-Externals", []any{"libxml2"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := minimalDoc()
			doc[tt.field] = tt.value

			result := mustValidate(t, New(), doc)
			var codes []validator.Code
			for _, issue := range result.Issues {
				assert.Equal(t, tt.field, issue.Field)
				codes = append(codes, issue.Code)
			}
			assert.Equal(t, tt.wantCodes, codes)
			assert.Equal(t, len(tt.wantCodes) == 0, result.Valid())
		})
	}
}

func TestValidate_PredicateViolationNamesElement(t *testing.T) {
	doc := minimalDoc()
	doc["Requires-Dists"] = []any{"ok (>=1.0)", "foo >>> bad"}

	result := mustValidate(t, New(), doc)
	require.Len(t, result.Issues, 1)

	issue := result.Issues[0]
	assert.Equal(t, validator.CodeInvalidValue, issue.Code)
	assert.Equal(t, "foo >>> bad", issue.Value)
	assert.Equal(t, map[string]string{"index": "1"}, issue.Context)
	assert.Contains(t, issue.Message, `"foo >>> bad"`)
}

func TestValidate_NameSlashMessage(t *testing.T) {
	doc := minimalDoc()
	doc["Name"] = "a/b"

	result := mustValidate(t, New(), doc)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, `must not contain '/'`, result.Issues[0].Message)
	assert.Equal(t, "a/b", result.Issues[0].Value)
}

func TestValidate_AccumulatesAllViolations(t *testing.T) {
	doc := map[string]any{
		"Metadata-Version": "1.0",
		"Name":             "a/b",
		"Version":          "nope",
		"Keywords":         []any{json.Number("1"), "ok", false},
		"Provides-Extras":  []any{"x[1]"},
		"URIs":             map[string]any{"a-very-long-uri-label-that-exceeds-the-limit": json.Number("3")},
	}

	result := mustValidate(t, New(), doc)

	// Summary missing, Metadata-Version, Name, Version, 2 keywords,
	// Provides-Extras, URI key length, URI value type.
	assert.Len(t, result.Issues, 9)
	assert.Len(t, result.ForField("Keywords"), 2)
	assert.Len(t, result.ForField("URIs"), 2)
	assert.Len(t, result.ForField("Summary"), 1)
}

func TestValidate_IssueOrderFollowsSchema(t *testing.T) {
	doc := map[string]any{"Version": "x", "Name": "a/b"}
	result := mustValidate(t, New(), doc)

	var fields []string
	for _, issue := range result.Issues {
		fields = append(fields, issue.Field)
	}
	assert.Equal(t, []string{"Metadata-Version", "Name", "Version", "Summary"}, fields)
}

func TestValidate_UnknownFields(t *testing.T) {
	doc := minimalDoc()
	doc["X-Custom"] = "anything"
	doc["Another"] = []any{json.Number("1")}

	t.Run("ignored by default", func(t *testing.T) {
		assert.True(t, mustValidate(t, New(), doc).Valid())
	})

	t.Run("rejected in strict mode", func(t *testing.T) {
		result := mustValidate(t, New(WithStrict(true)), doc)
		require.Len(t, result.Issues, 2)
		assert.Equal(t, "Another", result.Issues[0].Field)
		assert.Equal(t, "X-Custom", result.Issues[1].Field)
		for _, issue := range result.Issues {
			assert.Equal(t, validator.CodeUnknownField, issue.Code)
		}
	})
}

func TestValidate_NestedExtensionContext(t *testing.T) {
	doc := minimalDoc()
	doc["Extensions"] = map[string]any{"tool": map[string]any{"a": 1}, "bad": json.Number("2")}

	result := mustValidate(t, New(), doc)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, map[string]string{"key": "bad"}, result.Issues[0].Context)
}

func TestValidate_YAMLStyleMapping(t *testing.T) {
	doc := minimalDoc()
	doc["URIs"] = map[any]any{"Home": "https://example.com", 7: "x"}

	result := mustValidate(t, New(), doc)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, validator.CodeWrongType, result.Issues[0].Code)
	assert.Equal(t, "must be a string key, got number", result.Issues[0].Message)
}

func TestValidate_MalformedDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  any
	}{
		{"array", []any{json.Number("1"), json.Number("2")}},
		{"string", "Name"},
		{"null", nil},
		{"number", json.Number("3")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New().Validate(tt.doc)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, ErrMalformedDocument))
		})
	}
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	doc := minimalDoc()
	doc["Keywords"] = []any{"a", json.Number("1")}
	doc["URIs"] = map[string]any{"Home": "x"}

	before, err := json.Marshal(doc)
	require.NoError(t, err)

	mustValidate(t, New(WithStrict(true)), doc)

	after, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestValidate_Idempotent(t *testing.T) {
	doc := map[string]any{
		"Name":     "a/b",
		"Keywords": []any{json.Number("1")},
		"URIs":     map[string]any{"b": json.Number("1"), "a": json.Number("2"), "c": "ok"},
		"Extra":    true,
	}
	v := New(WithStrict(true))

	first := mustValidate(t, v, doc)
	second := mustValidate(t, v, doc)
	assert.Equal(t, first, second)
}

func TestValidate_ConcurrentUse(t *testing.T) {
	v := New()
	good := minimalDoc()
	bad := minimalDoc()
	bad["Version"] = "???"

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, want := good, true
			if i%2 == 1 {
				doc, want = bad, false
			}
			result, err := v.Validate(doc)
			if assert.NoError(t, err) {
				assert.Equal(t, want, result.Valid())
			}
		}(i)
	}
	wg.Wait()
}
