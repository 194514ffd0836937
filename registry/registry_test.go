package registry

import (
	"errors"
	"testing"

	"schemaui/model"
)

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	card := &model.Component{Name: "user_card", RawTemplate: "{name}"}
	if err := r.Register(card); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := r.Lookup("user_card")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != card {
		t.Error("Lookup returned a different component")
	}

	if _, err := r.Lookup("nope"); !errors.Is(err, ErrComponentNotFound) {
		t.Errorf("Lookup miss = %v, want ErrComponentNotFound", err)
	}
}

func TestDuplicateComponent(t *testing.T) {
	r := New()
	if err := r.Register(&model.Component{Name: "c"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := r.Register(&model.Component{Name: "c"})
	var dup *DuplicateComponentError
	if !errors.As(err, &dup) {
		t.Fatalf("got %v, want DuplicateComponentError", err)
	}
	if dup.Name != "c" {
		t.Errorf("duplicate name = %q, want c", dup.Name)
	}
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	r := New()
	for _, name := range []string{"z", "a", "m"} {
		if err := r.Register(&model.Component{Name: name}); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}
	list := r.List()
	if len(list) != 3 {
		t.Fatalf("got %d components, want 3", len(list))
	}
	for i, want := range []string{"z", "a", "m"} {
		if list[i].Name != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].Name, want)
		}
	}
}
