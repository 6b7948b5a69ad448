// Package keymap translates between ebiten key codes and the host-neutral
// entity.Key names used by the dispatch core, config and replays.
package keymap

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/drawloop/internal/domain/entity"
)

var byName = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		m[strings.ToLower(k.String())] = k
	}
	return m
}()

// FromEbiten returns the entity key for an ebiten key code
func FromEbiten(k ebiten.Key) entity.Key {
	return entity.Key(k.String())
}

// ToEbiten returns the ebiten key code for an entity key
func ToEbiten(k entity.Key) (ebiten.Key, bool) {
	ek, ok := byName[strings.ToLower(string(k))]
	return ek, ok
}

// ByName resolves a key name ("Space", "a", " ESCAPE ") case-insensitively
// and returns it in canonical form.
func ByName(name string) (entity.Key, bool) {
	ek, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", false
	}
	return FromEbiten(ek), true
}
