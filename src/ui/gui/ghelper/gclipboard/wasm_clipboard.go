//go:build js && wasm
// +build js,wasm

package gclipboard

import (
	"errors"
	"syscall/js"
)

func clipboard() (js.Value, error) {
	nav := js.Global().Get("navigator")
	if !nav.Truthy() {
		return js.Undefined(), errors.New("navigator not available")
	}
	cb := nav.Get("clipboard")
	if !cb.Truthy() {
		return js.Undefined(), errors.New("navigator.clipboard not available")
	}
	return cb, nil
}

// await waits for a promise and returns its value as a string.
func await(promise js.Value) (string, error) {
	type res struct {
		text string
		err  error
	}
	ch := make(chan res, 1)
	then := js.FuncOf(func(this js.Value, args []js.Value) any {
		var text string
		if len(args) > 0 && args[0].Type() == js.TypeString {
			text = args[0].String()
		}
		ch <- res{text, nil}
		return nil
	})
	catch := js.FuncOf(func(this js.Value, args []js.Value) any {
		msg := "clipboard rejected"
		if len(args) > 0 {
			msg = args[0].Call("toString").String()
		}
		ch <- res{"", errors.New(msg)}
		return nil
	})
	promise.Call("then", then).Call("catch", catch)
	r := <-ch
	then.Release()
	catch.Release()
	return r.text, r.err
}

func ReadAll() (string, error) {
	cb, err := clipboard()
	if err != nil {
		return "", err
	}
	if !cb.Get("readText").Truthy() {
		return "", errors.New("navigator.clipboard.readText not available")
	}
	return await(cb.Call("readText"))
}

func WriteAll(text string) error {
	cb, err := clipboard()
	if err != nil {
		return err
	}
	_, err = await(cb.Call("writeText", text))
	return err
}
