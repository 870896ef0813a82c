package server

import "testing"

func TestOpenAnalyzesValidSource(t *testing.T) {
	store := NewDocumentStore()
	src := "class A:\n  field num x\n  method f() -> void:\n    return\n"
	doc := store.Open("file:///a.ijk", src)

	if doc.CompErr != nil {
		t.Fatalf("unexpected compile error: %v", doc.CompErr)
	}
	if doc.Outline == nil || doc.Outline.Name != "A" {
		t.Fatalf("expected outline for class A, got %+v", doc.Outline)
	}
	if len(doc.Outline.Fields) != 1 || doc.Outline.Fields[0].Name != "x" {
		t.Fatalf("expected field x in outline, got %+v", doc.Outline.Fields)
	}
}

func TestUpdateReanalyzesAndSurfacesParseError(t *testing.T) {
	store := NewDocumentStore()
	store.Open("file:///a.ijk", "class A:\n  method f() -> void:\n    return\n")

	bad := "class A:\n  method f() -> void:\n    let q = 1\n"
	doc := store.Update("file:///a.ijk", bad)

	if doc.CompErr == nil {
		t.Fatal("expected a compile error after update with an undefined identifier")
	}
}

func TestCloseRemovesDocument(t *testing.T) {
	store := NewDocumentStore()
	store.Open("file:///a.ijk", "class A:\n  method f() -> void:\n    return\n")
	store.Close("file:///a.ijk")

	if doc := store.Get("file:///a.ijk"); doc != nil {
		t.Fatalf("expected no document after close, got %+v", doc)
	}
}

func TestGetUnknownURIReturnsNil(t *testing.T) {
	store := NewDocumentStore()
	if doc := store.Get("file:///missing.ijk"); doc != nil {
		t.Fatalf("expected nil for unknown URI, got %+v", doc)
	}
}
