//go:build js && wasm
// +build js,wasm

package gos

import (
	"errors"
	"syscall/js"
)

const storagePrefix = "evilground:"

// fetchBytes runs fetch(path) against the page origin.
func fetchBytes(path string) ([]byte, error) {
	fetch := js.Global().Get("fetch")
	if !fetch.Truthy() {
		return nil, errors.New("fetch() not supported")
	}

	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)

	var bufFn js.Func
	thenFn := js.FuncOf(func(this js.Value, args []js.Value) any {
		resp := args[0]
		if !resp.Get("ok").Bool() {
			ch <- result{nil, ErrNotExist}
			return nil
		}
		bufFn = js.FuncOf(func(this js.Value, args []js.Value) any {
			arr := js.Global().Get("Uint8Array").New(args[0])
			data := make([]byte, arr.Get("length").Int())
			js.CopyBytesToGo(data, arr)
			ch <- result{data, nil}
			return nil
		})
		resp.Call("arrayBuffer").Call("then", bufFn)
		return nil
	})
	catchFn := js.FuncOf(func(this js.Value, args []js.Value) any {
		ch <- result{nil, errors.New("fetch() failed")}
		return nil
	})

	fetch.Invoke(path).Call("then", thenFn).Call("catch", catchFn)
	res := <-ch
	thenFn.Release()
	catchFn.Release()
	if bufFn.Truthy() {
		bufFn.Release()
	}
	return res.data, res.err
}

func storage() js.Value {
	return js.Global().Get("localStorage")
}

// ReadFile prefers what WriteFile saved in this browser over the served file.
func ReadFile(name string) ([]byte, error) {
	if ls := storage(); ls.Truthy() {
		if v := ls.Call("getItem", storagePrefix+name); v.Truthy() {
			return []byte(v.String()), nil
		}
	}
	return fetchBytes(name)
}

func WriteFile(name string, data []byte) error {
	ls := storage()
	if !ls.Truthy() {
		return errors.New("localStorage not available")
	}
	ls.Call("setItem", storagePrefix+name, string(data))
	return nil
}

func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}
