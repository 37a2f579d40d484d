// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

// TileStatus is the semantic type of a cell. Tiles never change type on their
// own; only the simulation rewrites them (e.g. a collected chip becomes blank).
type TileStatus int

// Tile statuses
const (
	Blank TileStatus = iota
	Wall
	Water
	Chip
	KeyBlue
	KeyGreen
	KeyRed
	KeyYellow
	DoorBlue
	DoorGreen
	DoorRed
	DoorYellow
	DoorGoal
)

// String returns the string representation of a tile status
func (s TileStatus) String() string {
	switch s {
	case Blank:
		return "Blank"
	case Wall:
		return "Wall"
	case Water:
		return "Water"
	case Chip:
		return "Chip"
	case KeyBlue:
		return "KeyBlue"
	case KeyGreen:
		return "KeyGreen"
	case KeyRed:
		return "KeyRed"
	case KeyYellow:
		return "KeyYellow"
	case DoorBlue:
		return "DoorBlue"
	case DoorGreen:
		return "DoorGreen"
	case DoorRed:
		return "DoorRed"
	case DoorYellow:
		return "DoorYellow"
	case DoorGoal:
		return "DoorGoal"
	default:
		return "Unknown"
	}
}

// IsKey returns true if the tile holds a colored key
func (s TileStatus) IsKey() bool {
	return s >= KeyBlue && s <= KeyYellow
}

// IsColorDoor returns true if the tile is a colored (key-locked) door.
// The goal door is not a colored door; it is gated on chips, not keys.
func (s TileStatus) IsColorDoor() bool {
	return s >= DoorBlue && s <= DoorYellow
}

// KeyForDoor returns the key status that opens a colored door.
// The second return is false when the status is not a colored door.
func (s TileStatus) KeyForDoor() (TileStatus, bool) {
	switch s {
	case DoorBlue:
		return KeyBlue, true
	case DoorGreen:
		return KeyGreen, true
	case DoorRed:
		return KeyRed, true
	case DoorYellow:
		return KeyYellow, true
	default:
		return Blank, false
	}
}

// AllKeys returns the key statuses in a fixed order (blue, green, red, yellow)
func AllKeys() []TileStatus {
	return []TileStatus{KeyBlue, KeyGreen, KeyRed, KeyYellow}
}

// AllColorDoors returns the colored door statuses in a fixed order
func AllColorDoors() []TileStatus {
	return []TileStatus{DoorBlue, DoorGreen, DoorRed, DoorYellow}
}

// tileRunes maps the map-text characters to tile statuses.
// '@' marks the robot start and is handled by the parser, not here.
var tileRunes = map[rune]TileStatus{
	'.': Blank,
	'#': Wall,
	'~': Water,
	'*': Chip,
	'b': KeyBlue,
	'g': KeyGreen,
	'r': KeyRed,
	'y': KeyYellow,
	'B': DoorBlue,
	'G': DoorGreen,
	'R': DoorRed,
	'Y': DoorYellow,
	'X': DoorGoal,
}

// StatusForRune returns the tile status for a map-text character.
// The second return is false for unrecognized characters.
func StatusForRune(r rune) (TileStatus, bool) {
	s, ok := tileRunes[r]
	return s, ok
}

// Rune returns the map-text character for a tile status
func (s TileStatus) Rune() rune {
	for r, status := range tileRunes {
		if status == s {
			return r
		}
	}
	return '?'
}
