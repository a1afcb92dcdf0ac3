// Package loginform implements the submit-time check of the login form: both
// the email and the password must be non-blank before the form may be sent.
//
// The decision is a pure function (Validate). Applying it to the two error
// labels is done separately by Form, so the same rules drive the browser
// binding and the server-rendered page.
package loginform

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// DOM contract shared by the page renderer and the browser binding.
const (
	FormID          = "login-form"
	EmailFieldID    = "email"
	PasswordFieldID = "password"
	EmailErrorID    = "email-error"
	PasswordErrorID = "password-error"

	// HiddenClass hides an element when present and shows it when removed.
	HiddenClass = "hidden"
)

// User-visible messages.
const (
	MsgEmailRequired    = "Email requerido"
	MsgPasswordRequired = "Contraseña requerida"
)

// Credentials are the raw values of the two fields at submit time.
type Credentials struct {
	Email    string `form:"email" validate:"notblank"`
	Password string `form:"password" validate:"notblank"`
}

// Result reports the outcome of each check independently.
type Result struct {
	EmailValid    bool
	PasswordValid bool
}

// Valid reports whether submission may proceed.
func (r Result) Valid() bool {
	return r.EmailValid && r.PasswordValid
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or a nil func.
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}
	return v
}

// notBlank fails for strings that are empty once leading and trailing
// whitespace is removed.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return Trim(field.String()) != ""
}

// Trim removes the same leading and trailing characters as the browser's
// String.prototype.trim, so a value is blank on the server exactly when it
// is blank in login.js. That set is the ECMAScript WhiteSpace and
// LineTerminator code points: Unicode Zs plus TAB, VT, FF, LF, CR, LS, PS and
// the BOM. U+0085 (NEL) is not in it, unlike strings.TrimSpace.
func Trim(s string) string {
	return strings.TrimFunc(s, isJSSpace)
}

func isJSSpace(r rune) bool {
	switch r {
	case '\t', '\v', '\f', '\n', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// Validate evaluates both checks. They never short-circuit: a blank email
// does not prevent the password from being checked.
func Validate(c Credentials) Result {
	res := Result{EmailValid: true, PasswordValid: true}

	err := validate.Struct(c)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError can only come from a non-struct argument.
		return Result{}
	}
	for _, fe := range verrs {
		switch fe.StructField() {
		case "Email":
			res.EmailValid = false
		case "Password":
			res.PasswordValid = false
		}
	}
	return res
}
