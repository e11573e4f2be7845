package leadform

import (
	"reflect"
	"testing"
)

func TestValidate_NameRequired(t *testing.T) {
	for _, name := range []string{"", " ", "\t \n"} {
		got := Validate(FormFields{Name: name, Email: "kim@test.com", Consent: true})
		if got[FieldName] != MsgNameRequired {
			t.Fatalf("name %q: got %v", name, got)
		}
		if len(got) != 1 {
			t.Fatalf("name %q: expected only name error, got %v", name, got)
		}
	}
}

func TestValidate_NameErrorDoesNotSkipOthers(t *testing.T) {
	got := Validate(FormFields{Name: "  ", Email: "", Consent: false})
	want := FieldErrors{
		FieldName:    MsgNameRequired,
		FieldEmail:   MsgEmailRequired,
		FieldConsent: MsgConsentRequired,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestValidate_EmailRequiredOnly(t *testing.T) {
	for _, email := range []string{"", "   "} {
		got := Validate(FormFields{Name: "Kim", Email: email, Consent: true})
		want := FieldErrors{FieldEmail: "email required"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("email %q: got %v want %v", email, got, want)
		}
	}
}

func TestValidate_EmailFormat(t *testing.T) {
	bad := []string{"abc", "a@b", "a@@b.com", "a@b.c", "a@b.c0", "@b.com", "a b@c.com", " kim@test.com"}
	for _, email := range bad {
		got := Validate(FormFields{Name: "Kim", Email: email, Consent: true})
		if got[FieldEmail] != MsgEmailFormat {
			t.Fatalf("email %q: got %v", email, got)
		}
	}

	good := []string{"a@b.co", "kim@test.com", "first.last+tag@mail.example.org", "o'neil@x-y.io"}
	for _, email := range good {
		got := Validate(FormFields{Name: "Kim", Email: email, Consent: true})
		if len(got) != 0 {
			t.Fatalf("email %q: expected valid, got %v", email, got)
		}
	}
}

func TestValidate_ConsentRequired(t *testing.T) {
	got := Validate(FormFields{Name: "Kim", Email: "kim@test.com"})
	want := FieldErrors{FieldConsent: MsgConsentRequired}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	inputs := []FormFields{
		{},
		{Name: "Kim", Email: "nope", Consent: true},
		{Name: "Kim", Email: "kim@test.com", Consent: true},
	}
	for _, in := range inputs {
		a, b := Validate(in), Validate(in)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("not idempotent for %+v: %v vs %v", in, a, b)
		}
	}
}

func TestValidate_ValidReturnsEmptyMap(t *testing.T) {
	got := Validate(FormFields{Name: "Kim", Email: "kim@test.com", Consent: true})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non nil map, got %#v", got)
	}
}
