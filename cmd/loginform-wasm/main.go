//go:build js && wasm

// Command loginform-wasm attaches the login form validator to the page.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o web/static/wasm/login.wasm ./cmd/loginform-wasm
package main

import (
	"syscall/js"

	"github.com/nfrund/cyberwatch/internal/domform"
)

func main() {
	doc := js.Global().Get("document")
	if _, err := domform.Bind(doc); err != nil {
		js.Global().Get("console").Call("error", "loginform: "+err.Error())
		return
	}
	// The listener lives as long as the page.
	select {}
}
