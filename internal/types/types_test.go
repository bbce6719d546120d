package types

import "testing"

func TestReferenceRejectsVoid(t *testing.T) {
	if _, err := Reference(Scalar(Void), false); err == nil {
		t.Fatal("expected error forming ref void")
	}
}

func TestReferenceRejectsNesting(t *testing.T) {
	r, err := Reference(Scalar(Int), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Reference(r, false); err == nil {
		t.Fatal("expected error forming ref ref int")
	}
}

func TestEqualConsidersRefAndNoAlias(t *testing.T) {
	a, _ := Reference(Scalar(Int), false)
	b, _ := Reference(Scalar(Int), true)
	if a.Equal(b) {
		t.Fatal("noalias ref int should not equal ref int")
	}
	if !a.Equal(a) {
		t.Fatal("a type must equal itself")
	}
}

func TestElemStripsRef(t *testing.T) {
	r, _ := Reference(Scalar(Float), false)
	if r.Elem() != Scalar(Float) {
		t.Fatalf("expected Elem() == float, got %s", r.Elem())
	}
}

func TestStringRendering(t *testing.T) {
	cases := []struct {
		t    Type
		want string
	}{
		{Scalar(Int), "int"},
		{Scalar(CInt), "cint"},
		{Scalar(Void), "void"},
		{mustRef(Scalar(Bool), false), "ref bool"},
		{mustRef(Scalar(Float), true), "noalias ref float"},
	}
	for _, c := range cases {
		if got := c.t.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestUncheckedReferenceDetectsNesting(t *testing.T) {
	inner := UncheckedReference(Scalar(Int), false)
	outer := UncheckedReference(inner, false)
	if inner.IsWellFormed() != true {
		t.Fatal("single ref int should be well formed")
	}
	if outer.IsWellFormed() {
		t.Fatal("ref ref int should not be well formed")
	}
}

func TestUncheckedReferenceDetectsVoid(t *testing.T) {
	bad := UncheckedReference(Scalar(Void), false)
	if bad.IsWellFormed() {
		t.Fatal("ref void should not be well formed")
	}
}

func mustRef(base Type, noAlias bool) Type {
	t, err := Reference(base, noAlias)
	if err != nil {
		panic(err)
	}
	return t
}
