package dbc

import "strings"

// Text returns a present text value holding s.
func Text(s string) *string {
	return &s
}

// TextOr returns the text or def when it is absent.
func TextOr(t *string, def string) string {
	if t == nil {
		return def
	}
	return *t
}

// cloneText returns an independent copy of t. Absent stays absent.
func cloneText(t *string) *string {
	if t == nil {
		return nil
	}
	s := strings.Clone(*t)
	return &s
}

func cloneNames(names []string) []string {
	if names == nil {
		return nil
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.Clone(n)
	}
	return out
}

// ConcatText joins two optional text buffers and takes ownership of both.
//
// An absent input contributes nothing; two absent inputs yield absent. When
// only one input is present that same buffer is returned. When both are
// present a new buffer is returned and both inputs are emptied. Callers must
// use only the returned pointer afterwards.
func ConcatText(in, app *string) *string {
	switch {
	case in == nil && app == nil:
		return nil
	case app == nil:
		return in
	case in == nil:
		return app
	}
	merged := *in + *app
	*in, *app = "", ""
	return &merged
}
