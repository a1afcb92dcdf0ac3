//go:build js && wasm

package domform

import (
	"syscall/js"
	"testing"

	"github.com/nfrund/cyberwatch/internal/loginform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDOM builds plain JS objects that stand in for document elements, so
// the tests run under go_js_wasm_exec without a browser.
type fakeDOM struct {
	t     *testing.T
	elems map[string]*fakeElement
}

type fakeElement struct {
	js.Value
	classes   map[string]bool
	listeners map[string]js.Value
}

func newFakeDOM(t *testing.T) *fakeDOM {
	return &fakeDOM{t: t, elems: map[string]*fakeElement{}}
}

func (d *fakeDOM) fn(f func(args []js.Value) any) js.Func {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any { return f(args) })
	d.t.Cleanup(cb.Release)
	return cb
}

func (d *fakeDOM) element(id string) *fakeElement {
	el := &fakeElement{
		Value:     js.Global().Get("Object").New(),
		classes:   map[string]bool{loginform.HiddenClass: true},
		listeners: map[string]js.Value{},
	}
	el.Set("value", "")
	el.Set("textContent", "")

	classList := js.Global().Get("Object").New()
	classList.Set("add", d.fn(func(args []js.Value) any {
		el.classes[args[0].String()] = true
		return nil
	}))
	classList.Set("remove", d.fn(func(args []js.Value) any {
		delete(el.classes, args[0].String())
		return nil
	}))
	el.Set("classList", classList)

	el.Set("addEventListener", d.fn(func(args []js.Value) any {
		el.listeners[args[0].String()] = args[1]
		return nil
	}))
	el.Set("removeEventListener", d.fn(func(args []js.Value) any {
		delete(el.listeners, args[0].String())
		return nil
	}))

	d.elems[id] = el
	return el
}

func (d *fakeDOM) document() js.Value {
	doc := js.Global().Get("Object").New()
	doc.Set("getElementById", d.fn(func(args []js.Value) any {
		if el, ok := d.elems[args[0].String()]; ok {
			return el.Value
		}
		return js.Null()
	}))
	return doc
}

func loginDOM(t *testing.T) *fakeDOM {
	d := newFakeDOM(t)
	for _, id := range []string{
		loginform.FormID,
		loginform.EmailFieldID,
		loginform.PasswordFieldID,
		loginform.EmailErrorID,
		loginform.PasswordErrorID,
	} {
		d.element(id)
	}
	return d
}

// submitEvent dispatches a submit event and reports whether the default
// action was prevented.
func (d *fakeDOM) submit(t *testing.T) bool {
	t.Helper()
	listener, ok := d.elems[loginform.FormID].listeners["submit"]
	require.True(t, ok, "submit listener should be installed")

	prevented := false
	event := js.Global().Get("Object").New()
	event.Set("preventDefault", d.fn(func([]js.Value) any {
		prevented = true
		return nil
	}))
	listener.Invoke(event)
	return prevented
}

func TestBind_MissingElement(t *testing.T) {
	tests := []string{
		loginform.FormID,
		loginform.EmailFieldID,
		loginform.PasswordFieldID,
		loginform.EmailErrorID,
		loginform.PasswordErrorID,
	}
	for _, missing := range tests {
		t.Run(missing, func(t *testing.T) {
			d := loginDOM(t)
			delete(d.elems, missing)

			b, err := Bind(d.document())

			assert.Nil(t, b)
			assert.EqualError(t, err, "element #"+missing+" not found")
		})
	}
}

func TestRender(t *testing.T) {
	d := newFakeDOM(t)
	el := d.element(loginform.EmailErrorID)

	render(el.Value, loginform.ErrorLabel{Text: loginform.MsgEmailRequired})
	assert.Equal(t, loginform.MsgEmailRequired, el.Get("textContent").String())
	assert.False(t, el.classes[loginform.HiddenClass])

	render(el.Value, loginform.ErrorLabel{Hidden: true})
	assert.True(t, el.classes[loginform.HiddenClass])
}

func TestBind_SubmitValidatesLiveValues(t *testing.T) {
	d := loginDOM(t)
	b, err := Bind(d.document())
	require.NoError(t, err)

	d.elems[loginform.EmailFieldID].Set("value", "   ")
	d.elems[loginform.PasswordFieldID].Set("value", "s3cret")
	assert.True(t, d.submit(t), "blank email must block the submit")

	emailErr := d.elems[loginform.EmailErrorID]
	assert.Equal(t, loginform.MsgEmailRequired, emailErr.Get("textContent").String())
	assert.False(t, emailErr.classes[loginform.HiddenClass])
	assert.True(t, d.elems[loginform.PasswordErrorID].classes[loginform.HiddenClass])

	d.elems[loginform.EmailFieldID].Set("value", "ana@example.com")
	assert.False(t, d.submit(t), "filled form must be allowed through")
	assert.True(t, emailErr.classes[loginform.HiddenClass])

	b.Release()
	assert.Empty(t, d.elems[loginform.FormID].listeners)
}
