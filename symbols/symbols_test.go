package symbols

import "testing"

func TestClassScopeFieldAndStaticCounters(t *testing.T) {
	c := NewClassScope("Point")
	if err := c.AddField("x", "num"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddField("y", "num"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddStatic("count", "num"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	x, ok := c.Resolve("x")
	if !ok || x.Kind != KindField || x.ID != 0 {
		t.Fatalf("expected field x id 0, got %+v ok=%v", x, ok)
	}
	y, ok := c.Resolve("y")
	if !ok || y.Kind != KindField || y.ID != 1 {
		t.Fatalf("expected field y id 1, got %+v ok=%v", y, ok)
	}
	if c.FieldCount() != 2 {
		t.Fatalf("expected field count 2, got %d", c.FieldCount())
	}
	if c.StaticCount() != 1 {
		t.Fatalf("expected static count 1, got %d", c.StaticCount())
	}
}

func TestClassScopeRedeclarationIsAnError(t *testing.T) {
	c := NewClassScope("Point")
	if err := c.AddField("x", "num"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddField("x", "num"); err == nil {
		t.Fatal("expected a redeclaration error, got nil")
	}
}

func TestSubroutineScopeMethodGetsImplicitThis(t *testing.T) {
	c := NewClassScope("Point")
	s := NewSubroutineScope("move", "method", "void", c)

	this, ok := s.Resolve("this")
	if !ok || this.Kind != KindArg || this.ID != 0 || this.Type != "Point" {
		t.Fatalf("expected implicit this arg 0 of type Point, got %+v ok=%v", this, ok)
	}
	if s.ArgCount() != 1 {
		t.Fatalf("expected arg count 1 after implicit this, got %d", s.ArgCount())
	}
}

func TestSubroutineScopeFunctionHasNoImplicitThis(t *testing.T) {
	c := NewClassScope("Math")
	s := NewSubroutineScope("abs", "fun", "num", c)
	if s.ArgCount() != 0 {
		t.Fatalf("expected arg count 0 for a fun with no params, got %d", s.ArgCount())
	}
}

func TestSubroutineScopeFallsBackToClassScope(t *testing.T) {
	c := NewClassScope("Point")
	if err := c.AddField("x", "num"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := NewSubroutineScope("move", "method", "void", c)
	if err := s.AddArg("dx", "num"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dx, ok := s.Resolve("dx")
	if !ok || dx.Kind != KindArg || dx.ID != 1 {
		t.Fatalf("expected local arg dx id 1 (after implicit this), got %+v ok=%v", dx, ok)
	}

	x, ok := s.Resolve("x")
	if !ok || x.Kind != KindField {
		t.Fatalf("expected fallback to class field x, got %+v ok=%v", x, ok)
	}

	_, ok = s.Resolve("nowhere")
	if ok {
		t.Fatal("expected resolution of an unknown name to fail")
	}
}

func TestSubroutineScopeRedeclaredArgIsAnError(t *testing.T) {
	c := NewClassScope("Point")
	s := NewSubroutineScope("move", "fun", "void", c)
	if err := s.AddArg("dx", "num"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddArg("dx", "num"); err == nil {
		t.Fatal("expected a redeclaration error, got nil")
	}
}
