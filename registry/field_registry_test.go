/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"testing"
)

type fieldEntity struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Score     int     `json:"score"`
	SiteURL   *string `json:"siteUrl,omitempty"`
	Ignored   string  `json:"-"`
	unexposed string
}

type intKeyEntity struct {
	ID int
}

type keylessEntity struct {
	Name string
}

func TestFieldMapDerivation(t *testing.T) {
	fields := FieldMapFor[fieldEntity]()

	e := fieldEntity{ID: "p1", Name: "Ana", Score: 7, unexposed: "x"}

	t.Run("GoFieldNames", func(t *testing.T) {
		if got := fields["Name"](e); got != "Ana" {
			t.Errorf("Expected Ana, got %v", got)
		}
		if got := fields["Score"](e); got != 7 {
			t.Errorf("Expected 7, got %v", got)
		}
	})

	t.Run("JSONTagNames", func(t *testing.T) {
		if got := fields["name"](e); got != "Ana" {
			t.Errorf("Expected Ana via json tag, got %v", got)
		}
		if _, ok := fields["siteUrl"]; !ok {
			t.Error("Expected json tag name without options suffix")
		}
	})

	t.Run("NilPointerFieldYieldsNil", func(t *testing.T) {
		if got := fields["SiteURL"](e); got != nil {
			t.Errorf("Expected nil for unset pointer field, got %v", got)
		}
	})

	t.Run("UnexportedAndDashTagExcluded", func(t *testing.T) {
		if _, ok := fields["unexposed"]; ok {
			t.Error("Unexported field should not be accessible")
		}
		if _, ok := fields["-"]; ok {
			t.Error("json:\"-\" should not register a field")
		}
	})
}

func TestFieldMapOverride(t *testing.T) {
	type overrideEntity struct{ First, Last string }

	RegisterFieldMap[overrideEntity](FieldMap[overrideEntity]{
		"FullName": func(e overrideEntity) any { return e.First + " " + e.Last },
	})

	fields := FieldMapFor[overrideEntity]()
	got := fields["FullName"](overrideEntity{First: "Ana", Last: "Ng"})
	if got != "Ana Ng" {
		t.Errorf("Expected computed field, got %v", got)
	}
	if _, ok := fields["First"]; ok {
		t.Error("Explicit registration should replace the derived map")
	}
}

func TestKeyFuncFor(t *testing.T) {
	t.Run("DerivedFromIDField", func(t *testing.T) {
		fn, ok := KeyFuncFor[fieldEntity]()
		if !ok {
			t.Fatal("Expected derived key func")
		}
		if got := fn(fieldEntity{ID: "p9"}); got != "p9" {
			t.Errorf("Expected p9, got %q", got)
		}
	})

	t.Run("NonStringIDRendered", func(t *testing.T) {
		fn, ok := KeyFuncFor[intKeyEntity]()
		if !ok {
			t.Fatal("Expected derived key func for int ID")
		}
		if got := fn(intKeyEntity{ID: 42}); got != "42" {
			t.Errorf("Expected 42, got %q", got)
		}
	})

	t.Run("NoIDField", func(t *testing.T) {
		if _, ok := KeyFuncFor[keylessEntity](); ok {
			t.Error("Expected no key func for type without ID")
		}
	})

	t.Run("ExplicitRegistrationWins", func(t *testing.T) {
		type customKeyEntity struct {
			ID   string
			Code string
		}
		RegisterKeyFunc[customKeyEntity](func(e customKeyEntity) string { return e.Code })
		fn, ok := KeyFuncFor[customKeyEntity]()
		if !ok {
			t.Fatal("Expected registered key func")
		}
		if got := fn(customKeyEntity{ID: "x", Code: "C7"}); got != "C7" {
			t.Errorf("Expected C7, got %q", got)
		}
	})
}

func TestKeyMapRegistry(t *testing.T) {
	type keyedEntity struct{ ID string }

	if _, ok := GetKeyMap[keyedEntity](); ok {
		t.Fatal("Expected no key map before registration")
	}

	RegisterKeyMap[keyedEntity](map[string]string{
		"PK": "KE#{ID}",
		"SK": "KE#{ID}",
	})

	m, ok := GetKeyMap[keyedEntity]()
	if !ok {
		t.Fatal("Expected key map after registration")
	}
	if m["PK"] != "KE#{ID}" {
		t.Errorf("Unexpected PK template: %s", m["PK"])
	}

	// Pointer and value types share a registration.
	if _, ok := GetKeyMap[*keyedEntity](); !ok {
		t.Error("Expected pointer type to resolve the same key map")
	}
}

func TestTypeName(t *testing.T) {
	if got := TypeName[fieldEntity](); got != "fieldEntity" {
		t.Errorf("Expected fieldEntity, got %s", got)
	}
	if got := TypeName[*fieldEntity](); got != "fieldEntity" {
		t.Errorf("Expected pointer type to share the name, got %s", got)
	}
}
