//go:build js && wasm

// Command landing-wasm is the page script. Build it with
//
//	GOOS=js GOARCH=wasm go build -o web/static/landing.wasm ./cmd/landing-wasm
package main

import (
	"context"
	"syscall/js"

	"rema-viva-landing/pkg/browser"
)

func main() {
	if err := browser.Run(context.Background(), "/api/leads"); err != nil {
		js.Global().Get("console").Call("error", "landing: "+err.Error())
	}
}
