//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/folkcanvas/folk/backend-go/internal/canvas"
	"github.com/folkcanvas/folk/backend-go/internal/engine"
	"github.com/folkcanvas/folk/backend-go/internal/interaction"
	"github.com/folkcanvas/folk/backend-go/internal/observer"
)

var (
	cvs *canvas.Canvas
	obs *observer.RectObserver
)

func main() {
	obs = observer.NewRectObserver(rafScheduler{})
	cvs = canvas.NewCanvas(jsHost{}, obs)

	// Create the canvas API object
	folkCanvas := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	folkCanvas.Set("createShape", js.FuncOf(createShape))
	folkCanvas.Set("removeShape", js.FuncOf(removeShape))
	folkCanvas.Set("pointerDown", js.FuncOf(pointerDown))
	folkCanvas.Set("pointerMove", js.FuncOf(pointerMove))
	folkCanvas.Set("lostPointerCapture", js.FuncOf(lostPointerCapture))
	folkCanvas.Set("keyDown", js.FuncOf(keyDown))
	folkCanvas.Set("setZoom", js.FuncOf(setZoom))
	folkCanvas.Set("setSelection", js.FuncOf(setSelection))
	folkCanvas.Set("observeShape", js.FuncOf(observeShape))

	// --- Queries (frontend ← backend) ---
	folkCanvas.Set("getShape", js.FuncOf(getShape))
	folkCanvas.Set("getShapeIDs", js.FuncOf(getShapeIDs))
	folkCanvas.Set("getSelection", js.FuncOf(getSelection))
	folkCanvas.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	folkCanvas.Set("getState", js.FuncOf(getState))
	folkCanvas.Set("hitTest", js.FuncOf(hitTest))

	// Register on global scope
	js.Global().Set("folkCanvas", folkCanvas)

	// Signal that WASM is ready
	js.Global().Set("folkCanvasWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// rafScheduler flushes the rect observer on the browser's next animation
// frame, so rapid mutations coalesce into one callback per frame.
type rafScheduler struct{}

func (rafScheduler) Schedule(flush func()) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		cb.Release()
		flush()
		return nil
	})
	js.Global().Call("requestAnimationFrame", cb)
}

// jsHost forwards pointer-capture, focus and cursor requests to an optional
// global folkCanvasHost object provided by the frontend.
type jsHost struct{}

func (jsHost) call(method string, args ...interface{}) {
	host := js.Global().Get("folkCanvasHost")
	if host.Type() != js.TypeObject {
		return
	}
	fn := host.Get(method)
	if fn.Type() != js.TypeFunction {
		return
	}
	fn.Invoke(args...)
}

func (h jsHost) SetPointerCapture(handle interaction.Handle, pointerID int) {
	h.call("setPointerCapture", handle.String(), pointerID)
}

func (h jsHost) ReleasePointerCapture(handle interaction.Handle, pointerID int) {
	h.call("releasePointerCapture", handle.String(), pointerID)
}

func (h jsHost) FocusHandle(handle interaction.Handle) {
	h.call("focusHandle", handle.String())
}

func (h jsHost) SetHandleCursor(handle interaction.Handle, cursor string) {
	h.call("setHandleCursor", handle.String(), cursor)
}

// --- Command Handlers ---

func createShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return js.ValueOf("")
	}
	id := cvs.AddShape(args[0].Float(), args[1].Float(), args[2].Float(), args[3].Float())
	return js.ValueOf(id)
}

func removeShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	cvs.RemoveShape(args[0].String())
	return nil
}

// pointerDown starts a gesture: args are (id, pointerId, target, x, y).
func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 5 {
		return nil
	}
	shape := cvs.Shape(args[0].String())
	if shape == nil {
		return nil
	}
	target, _ := interaction.ParseHandle(args[2].String())
	shape.HandlePointerDown(interaction.PointerEvent{
		Type:      interaction.PointerDown,
		PointerID: args[1].Int(),
		Target:    target,
		Position:  pointAt(args[3], args[4]),
	})
	return nil
}

// pointerMove advances a gesture: args are (id, pointerId, x, y, movementX,
// movementY). Returns the per-axis commit results as JSON.
func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 6 {
		return js.ValueOf("[]")
	}
	shape := cvs.Shape(args[0].String())
	if shape == nil {
		return js.ValueOf("[]")
	}
	results := shape.HandlePointerMove(interaction.PointerEvent{
		Type:      interaction.PointerMove,
		PointerID: args[1].Int(),
		Position:  pointAt(args[2], args[3]),
		MovementX: args[4].Float(),
		MovementY: args[5].Float(),
	})
	return js.ValueOf(resultsJSON(results))
}

func lostPointerCapture(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	shape := cvs.Shape(args[0].String())
	if shape == nil {
		return nil
	}
	shape.HandleLostPointerCapture(interaction.PointerEvent{Type: interaction.LostPointerCapture})
	return nil
}

// keyDown routes a keyboard gesture: args are (id, key, shift, alt,
// focusedHandle). Returns the per-axis commit results as JSON.
func keyDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 5 {
		return js.ValueOf("[]")
	}
	shape := cvs.Shape(args[0].String())
	if shape == nil {
		return js.ValueOf("[]")
	}
	focused, _ := interaction.ParseHandle(args[4].String())
	results := shape.HandleKeyDown(interaction.KeyEvent{
		Key:           args[1].String(),
		Shift:         args[2].Bool(),
		Alt:           args[3].Bool(),
		FocusedHandle: focused,
	})
	return js.ValueOf(resultsJSON(results))
}

func setZoom(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	if shape := cvs.Shape(args[0].String()); shape != nil {
		shape.SetZoom(args[1].Float())
	}
	return nil
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		cvs.SetSelection(nil)
		return nil
	}

	arr := args[0]
	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	cvs.SetSelection(ids)
	return nil
}

// observeShape registers a JS callback for coalesced rect changes:
// args are (id, callback(boundsJSON)).
func observeShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 || args[1].Type() != js.TypeFunction {
		return nil
	}
	shape := cvs.Shape(args[0].String())
	if shape == nil {
		return nil
	}

	callback := args[1]
	sub := obs.Observe(shape, func(entry observer.Entry) {
		data, _ := json.Marshal(entry.ContentRect)
		callback.Invoke(string(data))
	})

	cancel := js.FuncOf(func(this js.Value, cancelArgs []js.Value) interface{} {
		sub.Cancel()
		return nil
	})
	return cancel
}

// --- Query Handlers ---

func getShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("{}")
	}
	return js.ValueOf(cvs.ShapeJSON(args[0].String()))
}

func getShapeIDs(this js.Value, args []js.Value) interface{} {
	data, _ := json.Marshal(cvs.IDs())
	return js.ValueOf(string(data))
}

func getSelection(this js.Value, args []js.Value) interface{} {
	data, _ := json.Marshal(cvs.Selection())
	return js.ValueOf(string(data))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	data, _ := json.Marshal(cvs.SelectionBounds())
	return js.ValueOf(string(data))
}

func getState(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("idle")
	}
	shape := cvs.Shape(args[0].String())
	if shape == nil {
		return js.ValueOf("idle")
	}
	return js.ValueOf(shape.State().String())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(cvs.HitTest(args[0].Float(), args[1].Float()))
}

// --- helpers ---

func pointAt(x, y js.Value) engine.Point {
	return engine.Point{X: x.Float(), Y: y.Float()}
}

func resultsJSON(results []interaction.AxisResult) string {
	type axisResult struct {
		Axis      string `json:"axis"`
		Committed bool   `json:"committed"`
	}
	out := make([]axisResult, len(results))
	for i, r := range results {
		out[i] = axisResult{Axis: r.Axis.String(), Committed: r.Committed}
	}
	data, _ := json.Marshal(out)
	return string(data)
}
