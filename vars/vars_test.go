// Copyright (c) 2024, The yash-go Authors

package vars

import (
	"testing"

	qt "github.com/go-quicktest/qt"
)

func TestScopedShadowing(t *testing.T) {
	s := NewStore()
	qt.Assert(t, qt.IsNil(s.Set("x", ScalarValue("outer"), false, false)))

	s.Push()
	qt.Assert(t, qt.IsNil(s.Set("x", ScalarValue("inner"), false, false)))
	qt.Assert(t, qt.Equals(s.Get("x").String(), "inner"))
	s.Pop()

	qt.Assert(t, qt.Equals(s.Get("x").String(), "outer"))
}

func TestReadOnlyRejectsSet(t *testing.T) {
	s := NewStore()
	qt.Assert(t, qt.IsNil(s.Set("RO", ScalarValue("v"), false, true)))
	err := s.Set("RO", ScalarValue("v2"), false, false)
	qt.Assert(t, qt.Equals(err, ErrReadOnly))
}

func TestIFSDefaultFallback(t *testing.T) {
	s := NewStore()
	qt.Assert(t, qt.Equals(s.IFS(), " \t\n"))

	s.Set("IFS", ScalarValue(""), false, false)
	qt.Assert(t, qt.Equals(s.IFS(), ""))

	s.Set("IFS", ScalarValue(":"), false, false)
	qt.Assert(t, qt.Equals(s.IFS(), ":"))
}

func TestPositionalParameters(t *testing.T) {
	s := NewStore()
	s.SetPositional([]string{"a", "b", "c"})

	v, ok := s.GetPositional(2)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v, "b"))

	_, ok = s.GetPositional(4)
	qt.Assert(t, qt.IsFalse(ok))

	qt.Assert(t, qt.DeepEquals(s.GetAllPositional(), []string{"a", "b", "c"}))
}

func TestExportedSurfacesOnlyExportedScalars(t *testing.T) {
	s := NewStore()
	s.Set("EXPORTED", ScalarValue("1"), true, false)
	s.Set("LOCAL", ScalarValue("2"), false, false)

	exported := s.Exported()
	qt.Assert(t, qt.DeepEquals(exported, []string{"EXPORTED=1"}))
}

func TestUnsetValueIsNotSet(t *testing.T) {
	var v Value
	qt.Assert(t, qt.IsFalse(v.IsSet()))
	qt.Assert(t, qt.Equals(v.String(), ""))
}
