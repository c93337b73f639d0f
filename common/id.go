package common

import (
	"strconv"
	"sync/atomic"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 9
)

var fallbackID atomic.Uint64

// NewID returns a short random id for assets, notes and scene objects.
func NewID() string {
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		// only fails when the system random source does
		return "id" + strconv.FormatUint(fallbackID.Add(1), 36)
	}
	return id
}
