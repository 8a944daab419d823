package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/arcade/input"
)

// domKey converts an ebiten key to its DOM code. ebiten already names most
// keys the DOM way; letters gain the "Key" prefix.
func domKey(k ebiten.Key) input.Key {
	s := k.String()
	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
		return input.Key("Key" + s)
	}
	return input.Key(s)
}
