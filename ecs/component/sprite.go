package component

import "github.com/hajimehoshi/ebiten/v2"

// Sprite is the decoded image drawn inside an asset card.
type Sprite struct {
	Image *ebiten.Image
}

var SpriteComponent = NewComponent[Sprite]()
