//go:build js && wasm

// Package domform binds the login form validator to a browser document.
package domform

import (
	"fmt"
	"syscall/js"

	"github.com/nfrund/cyberwatch/internal/loginform"
)

// Binding holds the element references captured at bind time.
type Binding struct {
	form     js.Value
	email    js.Value
	password js.Value
	emailErr js.Value
	passErr  js.Value
	onSubmit js.Func
}

// Bind looks up the login form elements in doc and installs the submit
// listener. Every element must already be present.
func Bind(doc js.Value) (*Binding, error) {
	b := &Binding{}
	for _, el := range []struct {
		id  string
		dst *js.Value
	}{
		{loginform.FormID, &b.form},
		{loginform.EmailFieldID, &b.email},
		{loginform.PasswordFieldID, &b.password},
		{loginform.EmailErrorID, &b.emailErr},
		{loginform.PasswordErrorID, &b.passErr},
	} {
		v := doc.Call("getElementById", el.id)
		if v.IsNull() || v.IsUndefined() {
			return nil, fmt.Errorf("element #%s not found", el.id)
		}
		*el.dst = v
	}

	b.onSubmit = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		if !b.submit() {
			args[0].Call("preventDefault")
		}
		return nil
	})
	b.form.Call("addEventListener", "submit", b.onSubmit)
	return b, nil
}

// submit runs one validation pass against the live DOM.
func (b *Binding) submit() bool {
	f := loginform.NewForm()
	proceed := f.Submit(loginform.Credentials{
		Email:    b.email.Get("value").String(),
		Password: b.password.Get("value").String(),
	})
	render(b.emailErr, f.EmailErr)
	render(b.passErr, f.PassErr)
	return proceed
}

// Release removes the listener and frees the callback.
func (b *Binding) Release() {
	b.form.Call("removeEventListener", "submit", b.onSubmit)
	b.onSubmit.Release()
}

func render(el js.Value, label loginform.ErrorLabel) {
	if label.Hidden {
		el.Get("classList").Call("add", loginform.HiddenClass)
		return
	}
	el.Set("textContent", label.Text)
	el.Get("classList").Call("remove", loginform.HiddenClass)
}
