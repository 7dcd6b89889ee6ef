package site

import (
	"strings"

	"github.com/toqaosama/portfolio-backend/errs"
)

type Status string

const (
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusReady   Status = "ready"
)

// AllGroup is the leading tab that holds every item of a section.
const AllGroup = "all"

// Group is one tab of a section. Visible and Hidden split Items at the page
// size; "show more" reveals Hidden without another fetch.
type Group[T any] struct {
	Name    string
	Items   []T
	Visible []T
	Hidden  []T
}

// Section is a dynamic block of the public page in one of its three states.
// An errored section still renders, with an empty list and the message.
type Section[T any] struct {
	Name   string
	Status Status
	Error  string
	Items  []T
	Groups []Group[T]
}

func Loading[T any](name string) Section[T] {
	return Section[T]{Name: name, Status: StatusLoading, Items: []T{}}
}

func Failed[T any](name string, err error) Section[T] {
	return Section[T]{Name: name, Status: StatusError, Error: errorText(err), Items: []T{}}
}

// Ready groups items by key. A nil key yields the single "all" group.
func Ready[T any](name string, items []T, key func(T) string, pageSize int) Section[T] {
	if items == nil {
		items = []T{}
	}
	return Section[T]{
		Name:   name,
		Status: StatusReady,
		Items:  items,
		Groups: GroupBy(items, key, pageSize),
	}
}

func (s Section[T]) Empty() bool {
	return len(s.Items) == 0
}

// GroupBy returns the "all" group followed by one group per distinct key, in
// order of first appearance. Items keep their order within each group. When
// every item shares one key only the "all" group is returned.
func GroupBy[T any](items []T, key func(T) string, pageSize int) []Group[T] {
	groups := []Group[T]{newGroup(AllGroup, items, pageSize)}
	if key == nil {
		return groups
	}

	var order []string
	byKey := make(map[string][]T)
	for _, item := range items {
		k := key(item)
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], item)
	}
	if len(order) < 2 {
		return groups
	}
	for _, k := range order {
		groups = append(groups, newGroup(k, byKey[k], pageSize))
	}
	return groups
}

func newGroup[T any](name string, items []T, pageSize int) Group[T] {
	visible, hidden := Paginate(items, pageSize)
	return Group[T]{Name: name, Items: items, Visible: visible, Hidden: hidden}
}

// Paginate splits items after the first pageSize. A non-positive pageSize
// shows everything.
func Paginate[T any](items []T, pageSize int) (visible, hidden []T) {
	if pageSize <= 0 || len(items) <= pageSize {
		return items, []T{}
	}
	return items[:pageSize], items[pageSize:]
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := errs.As(err); ok && errs.IsConfigError(err) {
		return apiErr.Details
	}
	if errs.IsPermissionError(err) {
		return "Access denied: " + errs.StoreMessage(err)
	}
	return strings.TrimSpace(errs.StoreMessage(err))
}
