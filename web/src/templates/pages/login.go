package pages

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/cyberwatch/internal/config"
	"github.com/nfrund/cyberwatch/internal/loginform"
	"github.com/nfrund/cyberwatch/internal/view/dto/auth"
)

// Login renders the sign-in card. The element IDs are the contract used by
// the browser-side validator.
func Login(data auth.LoginData) g.Node {
	f := data.Form
	if f == nil {
		f = loginform.NewForm()
	}

	return h.Div(
		h.Class("max-w-md mx-auto bg-white shadow-2xl rounded-xl p-10"),
		h.H1(h.Class("text-3xl font-extrabold text-indigo-700 mb-6"), g.Text("Iniciar sesión")),
		g.If(data.Error != "",
			h.Div(h.ID("login-error"), h.Class("mb-4 text-red-700"), h.Role("alert"), g.Text(data.Error)),
		),
		h.Form(
			h.ID(loginform.FormID),
			h.Method("post"),
			h.Action("/login"),
			g.Attr("novalidate"),
			field("Email", loginform.EmailFieldID, "email", f.Email, "username"),
			errorLabel(f.EmailErr),
			field("Contraseña", loginform.PasswordFieldID, "password", "", "current-password"),
			errorLabel(f.PassErr),
			h.Button(h.Type("submit"), h.Class("mt-6 w-full bg-indigo-600 text-white rounded py-2"), g.Text("Entrar")),
		),
	)
}

func field(label, id, typ, value, autocomplete string) g.Node {
	return h.Div(h.Class("mt-4"),
		h.Label(h.For(id), h.Class("block text-gray-700"), g.Text(label)),
		h.Input(
			h.ID(id),
			h.Name(id),
			h.Type(typ),
			h.AutoComplete(autocomplete),
			g.If(value != "", h.Value(value)),
			h.Class("w-full border rounded px-3 py-2"),
		),
	)
}

func errorLabel(l loginform.ErrorLabel) g.Node {
	return h.Span(
		h.ID(l.ID),
		c.Classes{
			"text-sm":             true,
			"text-red-600":        true,
			loginform.HiddenClass: l.Hidden,
		},
		g.Text(l.Text),
	)
}

// LoginScripts returns the script tags for the configured browser-side
// validator.
func LoginScripts(validator string) []g.Node {
	switch validator {
	case config.ClientValidatorJS:
		return []g.Node{h.Script(h.Src("/static/js/login.js"))}
	case config.ClientValidatorWasm:
		return []g.Node{
			h.Script(h.Src("/static/wasm/wasm_exec.js")),
			h.Script(g.Raw(`const go = new Go();
WebAssembly.instantiateStreaming(fetch("/static/wasm/login.wasm"), go.importObject).then((r) => go.run(r.instance));`)),
		}
	default:
		return nil
	}
}
