package models

import (
	"encoding/json"
	"strings"

	"github.com/toqaosama/portfolio-backend/normalize"
	"gorm.io/datatypes"
)

// decodeJSON returns the decoded value of a jsonb column, or nil when the
// column is empty or holds invalid JSON.
func decodeJSON(raw datatypes.JSON) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func encodeList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}

func stringList(raw datatypes.JSON) []string {
	return normalize.ToStrings(decodeJSON(raw))
}

func textPtr(s string) *string {
	return &s
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

// FlexList is a list field that clients may send either as a JSON array or
// as comma separated text ("React, Node").
type FlexList []string

func (l *FlexList) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if s, ok := v.(string); ok {
		*l = normalize.SplitList(s)
		return nil
	}
	items := normalize.ToStrings(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*l = out
	return nil
}

// Strings returns the list as a non-nil slice.
func (l FlexList) Strings() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}
