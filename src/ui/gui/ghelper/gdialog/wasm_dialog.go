//go:build js && wasm
// +build js,wasm

package gdialog

import (
	"errors"
	"syscall/js"
)

var ErrCancelled = errors.New("cancelled")

// <input type="file">, wait and read to []byte.
func OpenFile(title string) (Result, error) {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return Result{}, errors.New("document not available")
	}
	body := doc.Get("body")
	if !body.Truthy() {
		return Result{}, errors.New("document.body not available")
	}

	type result struct {
		res Result
		err error
	}
	ch := make(chan result, 1)

	input := doc.Call("createElement", "input")
	input.Set("type", "file")
	input.Set("accept", ".fen,.txt")
	input.Set("title", title)

	var onload, onerror js.Func
	onchange := js.FuncOf(func(this js.Value, args []js.Value) any {
		files := input.Get("files")
		if files.Length() == 0 {
			ch <- result{Result{}, ErrCancelled}
			return nil
		}
		file := files.Index(0)
		name := file.Get("name").String()
		reader := js.Global().Get("FileReader").New()

		onload = js.FuncOf(func(this js.Value, args []js.Value) any {
			arr := js.Global().Get("Uint8Array").New(reader.Get("result"))
			data := make([]byte, arr.Get("length").Int())
			js.CopyBytesToGo(data, arr)
			ch <- result{Result{Name: name, Data: data}, nil}
			return nil
		})
		onerror = js.FuncOf(func(this js.Value, args []js.Value) any {
			ch <- result{Result{}, errors.New("failed to read file")}
			return nil
		})
		reader.Set("onload", onload)
		reader.Set("onerror", onerror)
		reader.Call("readAsArrayBuffer", file)
		return nil
	})
	// closing the picker without a file
	oncancel := js.FuncOf(func(this js.Value, args []js.Value) any {
		ch <- result{Result{}, ErrCancelled}
		return nil
	})
	input.Set("onchange", onchange)
	input.Call("addEventListener", "cancel", oncancel)

	body.Call("appendChild", input)
	input.Call("click")

	r := <-ch

	body.Call("removeChild", input)
	onchange.Release()
	oncancel.Release()
	if onload.Truthy() {
		onload.Release()
		onerror.Release()
	}
	return r.res, r.err
}

func ShowError(msg string) {
	js.Global().Call("alert", msg)
}
