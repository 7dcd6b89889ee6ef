package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var projectCategories = []string{"wordpress", "coding", "design", "shopify"}

func TestToSequence(t *testing.T) {
	str := "React"
	cases := []struct {
		name string
		in   any
		want []any
	}{
		{"nil", nil, []any{}},
		{"text", "React, Node", []any{}},
		{"pointer to text", &str, []any{}},
		{"number", 42, []any{}},
		{"bool", true, []any{}},
		{"map", map[string]any{"a": 1}, []any{}},
		{"bytes", []byte(`["a"]`), []any{}},
		{"nil slice", []any(nil), []any{}},
		{"any slice", []any{"a", 1.0}, []any{"a", 1.0}},
		{"string slice", []string{"React", "Node"}, []any{"React", "Node"}},
		{"int slice", []int{1, 2}, []any{1, 2}},
		{"array", [2]string{"x", "y"}, []any{"x", "y"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToSequence(tc.in)
			assert.NotNil(t, got)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, ToSequence(got), "must be idempotent")
		})
	}
}

func TestToStringsDropsNonText(t *testing.T) {
	got := ToStrings([]any{"React", 3, nil, "Node", true})
	assert.Equal(t, []string{"React", "Node"}, got)
	assert.Equal(t, got, ToStrings(got))
	assert.Empty(t, ToStrings("React"))
}

func TestToText(t *testing.T) {
	s := "hello"
	var nilStr *string

	assert.Equal(t, "hello", ToText("hello"))
	assert.Equal(t, "hello", ToText(&s))
	assert.Equal(t, "", ToText(nilStr))
	assert.Equal(t, "", ToText(12))
	assert.Equal(t, "", ToText(nil))
	assert.Equal(t, "", ToText([]string{"a"}))
}

func TestToFlag(t *testing.T) {
	yes, no := true, false
	var nilBool *bool

	truthy := []any{true, &yes, 1, -3, 0.5, "false", "x", []any{}, map[string]any{}}
	falsy := []any{nil, false, &no, nilBool, 0, 0.0, "", int64(0), uint8(0)}

	for _, v := range truthy {
		assert.True(t, ToFlag(v), "%#v", v)
	}
	for _, v := range falsy {
		assert.False(t, ToFlag(v), "%#v", v)
	}
}

func TestToCategoryAlwaysReturnsMember(t *testing.T) {
	inputs := []any{"", nil, "coding", "WordPress", "  design  ", "SHOPIFY", "other", 7, []string{"coding"}}
	for _, in := range inputs {
		got := ToCategory(in, projectCategories, "coding")
		assert.Contains(t, projectCategories, got, "%#v", in)
		assert.Equal(t, got, ToCategory(got, projectCategories, "coding"))
	}

	assert.Equal(t, "wordpress", ToCategory("WordPress", projectCategories, "coding"))
	assert.Equal(t, "design", ToCategory("  design ", projectCategories, "coding"))
	assert.Equal(t, "coding", ToCategory("photography", projectCategories, "coding"))
	assert.Equal(t, "coding", ToCategory(nil, projectCategories, "coding"))
}

func TestToCategoryKeepsCanonicalSpelling(t *testing.T) {
	icons := []string{"Code", "Server", "Brain"}
	assert.Equal(t, "Server", ToCategory("server", icons, "Code"))
	assert.Equal(t, "Code", ToCategory("rocket", icons, "Code"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"React", "Node"}, SplitList("React, Node"))
	assert.Equal(t, []string{"Go"}, SplitList(" , Go ,, "))
	assert.Empty(t, SplitList(""))
}

func TestToLink(t *testing.T) {
	assert.Equal(t, "", ToLink("null"))
	assert.Equal(t, "", ToLink(" NULL "))
	assert.Equal(t, "", ToLink(nil))
	assert.Equal(t, "https://example.com", ToLink(" https://example.com "))
	assert.Equal(t, ToLink("null"), ToLink(ToLink("null")))
}
