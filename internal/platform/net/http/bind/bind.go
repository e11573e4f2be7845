// Package bind decodes request bodies strictly and validates them with
// go-playground/validator, failures come back as perr coded errors
package bind

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "firstvibe/internal/platform/errors"
	"firstvibe/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DefaultMaxBytes caps a body when Options.MaxBytes is zero
const DefaultMaxBytes = 1 << 20

// Options relaxes ParseJSON, the zero value is the strict default
type Options struct {
	// MaxBytes caps the body, zero means DefaultMaxBytes and negative means no cap
	MaxBytes int64
	// AllowUnknown accepts fields the target type does not declare
	AllowUnknown bool
	// AllowEmpty decodes an empty body as the zero T
	AllowEmpty bool
}

func (o Options) limit() int64 {
	if o.MaxBytes == 0 {
		return DefaultMaxBytes
	}
	return o.MaxBytes
}

// short english messages, {0} is the json field name and {1} the tag param
var shortMessages = map[string]string{
	"required": "{0} is required",
	"min":      "{0} must be at least {1}",
	"max":      "{0} must be at most {1}",
	"oneof":    "{0} must be one of: {1}",
	"email":    "{0} must be a valid email",
}

type checker struct {
	v     *validator.Validate
	trans ut.Translator
}

var checks = sync.OnceValue(func() checker {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	for tag, text := range shortMessages {
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(tag, fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
				return msg
			},
		)
	}
	return checker{v: v, trans: trans}
})

// jsonName reports fields by their json name so errors match the wire
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// Validate checks v against its validate tags
// the first failing field comes back as a perr validation error carrying that field
func Validate(v any) error {
	err := checks().v.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		logger.Get().Error().Err(err).Msg("validator misuse")
		return perr.Wrap(err, perr.ErrorCodeValidation, "validation error")
	}
	fe := verrs[0]
	return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(checks().trans)), fe.Field())
}

// ParseJSON reads one JSON value into T and validates it
// Bodyless GET, HEAD, DELETE and OPTIONS requests yield the zero T.
func ParseJSON[T any](r *http.Request, opts ...Options) (T, error) {
	var zero, dst T
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() { _ = r.Body.Close() }()

	var body io.Reader = r.Body
	if n := o.limit(); n > 0 {
		body = io.LimitReader(body, n)
	}
	br := bufio.NewReader(body)
	if _, err := br.Peek(1); err != nil {
		switch {
		case o.AllowEmpty:
			return zero, nil
		case r.Method == http.MethodGet, r.Method == http.MethodHead,
			r.Method == http.MethodDelete, r.Method == http.MethodOptions:
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(br)
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}
