package leadform

// Update is a single field edit, the closed set is
// NameChanged, EmailChanged, ConsentChanged and HoneypotChanged
type Update interface {
	apply(f *FormFields, honeypot *string) (Field, bool)
}

// NameChanged sets the name field
type NameChanged string

// EmailChanged sets the email field
type EmailChanged string

// ConsentChanged sets the consent checkbox
type ConsentChanged bool

// HoneypotChanged sets the hidden honeypot field
type HoneypotChanged string

func (u NameChanged) apply(f *FormFields, _ *string) (Field, bool) {
	f.Name = string(u)
	return FieldName, true
}

func (u EmailChanged) apply(f *FormFields, _ *string) (Field, bool) {
	f.Email = string(u)
	return FieldEmail, true
}

func (u ConsentChanged) apply(f *FormFields, _ *string) (Field, bool) {
	f.Consent = bool(u)
	return FieldConsent, true
}

func (u HoneypotChanged) apply(_ *FormFields, hp *string) (Field, bool) {
	*hp = string(u)
	return "", false
}
