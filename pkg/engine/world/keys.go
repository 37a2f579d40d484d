package world

import (
	"github.com/zyedidia/generic/mapset"
)

// KeySet is a set of held key statuses
type KeySet = mapset.Set[TileStatus]

// NewKeySet creates an empty key set
func NewKeySet() KeySet {
	return mapset.New[TileStatus]()
}
