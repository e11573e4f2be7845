package leadform

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Messages shown inline next to each field
const (
	MsgNameRequired    = "name required."
	MsgEmailRequired   = "email required"
	MsgEmailFormat     = "invalid email format."
	MsgConsentRequired = "consent required."
)

// emailRE accepts local@label(.label)*.tld with an alphabetic tld of 2+ chars
var emailRE = regexp.MustCompile("^(?:[a-zA-Z0-9_'^&/+=!?$%#`~.-]+)@(?:[a-zA-Z0-9-]+\\.)+[a-zA-Z]{2,}$")

// leadInput carries the rule set, tag order is rule precedence
type leadInput struct {
	Name    string `json:"name" validate:"trimmed_required"`
	Email   string `json:"email" validate:"trimmed_required,lead_email"`
	Consent bool   `json:"consent" validate:"required"`
}

// messages maps field and failing tag to the inline message
var messages = map[Field]map[string]string{
	FieldName:    {"trimmed_required": MsgNameRequired},
	FieldEmail:   {"trimmed_required": MsgEmailRequired, "lead_email": MsgEmailFormat},
	FieldConsent: {"required": MsgConsentRequired},
}

var (
	vOnce  sync.Once
	vInst  *validator.Validate
	vTrans ut.Translator
)

func rules() (*validator.Validate, ut.Translator) {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			if tag == "" || tag == "-" {
				return fld.Name
			}
			return tag
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)
		_ = v.RegisterValidation("trimmed_required", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("lead_email", func(fl validator.FieldLevel) bool {
			return IsEmail(fl.Field().String())
		})

		vInst, vTrans = v, trans
	})
	return vInst, vTrans
}

// IsEmail reports whether s has the accepted address shape, s is not trimmed
func IsEmail(s string) bool { return emailRE.MatchString(s) }

// Validate checks f against the field rules and returns an empty map when valid
func Validate(f FormFields) FieldErrors {
	v, trans := rules()
	out := FieldErrors{}

	err := v.Struct(leadInput{Name: f.Name, Email: f.Email, Consent: f.Consent})
	if err == nil {
		return out
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// only reachable on programmer error in leadInput
		panic("leadform: " + err.Error())
	}
	for _, fe := range verrs {
		field := Field(fe.Field())
		if out.Has(field) {
			continue
		}
		if msg, ok := messages[field][fe.Tag()]; ok {
			out[field] = msg
			continue
		}
		out[field] = fe.Translate(trans)
	}
	return out
}
