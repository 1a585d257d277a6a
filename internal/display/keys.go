package display

import "github.com/hajimehoshi/ebiten/v2"

// ebitenKeyNames maps Ebitengine keys to the names used in key bindings.
// The names match SDL's key names, lower-cased.
var ebitenKeyNames = map[ebiten.Key]string{
	ebiten.KeyA: "a", ebiten.KeyB: "b", ebiten.KeyC: "c", ebiten.KeyD: "d",
	ebiten.KeyE: "e", ebiten.KeyF: "f", ebiten.KeyG: "g", ebiten.KeyH: "h",
	ebiten.KeyI: "i", ebiten.KeyJ: "j", ebiten.KeyK: "k", ebiten.KeyL: "l",
	ebiten.KeyM: "m", ebiten.KeyN: "n", ebiten.KeyO: "o", ebiten.KeyP: "p",
	ebiten.KeyQ: "q", ebiten.KeyR: "r", ebiten.KeyS: "s", ebiten.KeyT: "t",
	ebiten.KeyU: "u", ebiten.KeyV: "v", ebiten.KeyW: "w", ebiten.KeyX: "x",
	ebiten.KeyY: "y", ebiten.KeyZ: "z",
	ebiten.Key0: "0", ebiten.Key1: "1", ebiten.Key2: "2", ebiten.Key3: "3",
	ebiten.Key4: "4", ebiten.Key5: "5", ebiten.Key6: "6", ebiten.Key7: "7",
	ebiten.Key8: "8", ebiten.Key9: "9",
	ebiten.KeyEnter: "enter", ebiten.KeyTab: "tab", ebiten.KeySpace: "space",
	ebiten.KeyBackspace: "backspace", ebiten.KeyEscape: "escape",
	ebiten.KeyArrowLeft: "left", ebiten.KeyArrowRight: "right",
	ebiten.KeyArrowDown: "down", ebiten.KeyArrowUp: "up",
	ebiten.KeyF1: "f1", ebiten.KeyF2: "f2", ebiten.KeyF3: "f3", ebiten.KeyF4: "f4",
	ebiten.KeyF5: "f5", ebiten.KeyF6: "f6", ebiten.KeyF7: "f7", ebiten.KeyF8: "f8",
	ebiten.KeyF9: "f9", ebiten.KeyF10: "f10", ebiten.KeyF11: "f11", ebiten.KeyF12: "f12",
	ebiten.KeyDelete: "delete", ebiten.KeyHome: "home", ebiten.KeyEnd: "end",
	ebiten.KeyPageUp: "pageup", ebiten.KeyPageDown: "pagedown",
}
