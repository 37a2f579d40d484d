package levels

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
)

// mustParse builds a level from map lines, failing the test on parse errors
func mustParse(t *testing.T, lines ...string) *Level {
	t.Helper()
	lvl, err := Parse("test", lines)
	if err != nil {
		t.Fatalf("parsing test map: %v", err)
	}
	return lvl
}

func TestSolvable_OpenLevel(t *testing.T) {
	if !Solvable(mustParse(t, "@.*.X")) {
		t.Error("Solvable(open level) = false, want true")
	}
}

func TestSolvable_NoGoal(t *testing.T) {
	if Solvable(mustParse(t, "@.*..")) {
		t.Error("Solvable(no goal door) = true, want false")
	}
}

func TestSolvable_ChipBehindWater(t *testing.T) {
	if Solvable(mustParse(t, "@~*X")) {
		t.Error("Solvable(chip behind water) = true, want false")
	}
}

func TestSolvable_DoorWithKey(t *testing.T) {
	if !Solvable(mustParse(t, "@bB*X")) {
		t.Error("Solvable(door with collectible key) = false, want true")
	}
}

func TestSolvable_KeyBehindOwnDoor(t *testing.T) {
	if Solvable(mustParse(t, "@.Bb*X")) {
		t.Error("Solvable(key behind its own door) = true, want false")
	}
}

func TestSolvable_ChainedKeys(t *testing.T) {
	// Blue key opens the way to the green key, which gates the chip.
	if !Solvable(mustParse(t, "@bBgG*X")) {
		t.Error("Solvable(chained keys) = false, want true")
	}
}

func TestSolvable_GoalBehindLockedDoor(t *testing.T) {
	if Solvable(mustParse(t, "@*BX")) {
		t.Error("Solvable(goal behind keyless door) = true, want false")
	}
}

func TestSolvable_Builtins(t *testing.T) {
	for _, lvl := range Builtin() {
		if !Solvable(lvl) {
			t.Errorf("built-in level %q is not solvable", lvl.Name)
		}
	}
}

func TestGenerate_ProducesSolvableLevels(t *testing.T) {
	for size := 1; size <= 6; size++ {
		for seed := int64(1); seed <= 10; seed++ {
			lvl, err := Generate(size, rand.New(rand.NewSource(seed)))
			if err != nil {
				t.Fatalf("Generate(%d, seed %d): %v", size, seed, err)
			}

			if !Solvable(lvl) {
				t.Errorf("Generate(%d, seed %d) produced an unsolvable level", size, seed)
			}
			if got := lvl.Grid.Count(world.DoorGoal); got != 1 {
				t.Errorf("Generate(%d, seed %d): %d goal doors, want 1", size, seed, got)
			}
			if got := lvl.Grid.Count(world.Chip); got != size+1 {
				t.Errorf("Generate(%d, seed %d): %d chips, want %d", size, seed, got, size+1)
			}
			if s, _ := lvl.Grid.TileAt(lvl.Start); s != world.Blank {
				t.Errorf("Generate(%d, seed %d): start tile is %v, want Blank", size, seed, s)
			}
		}
	}
}

func TestGenerate_PerimeterIsWalled(t *testing.T) {
	lvl, err := Generate(3, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}

	rows, cols := lvl.Grid.Rows(), lvl.Grid.Cols()
	for col := 0; col < cols; col++ {
		for _, row := range []int{0, rows - 1} {
			if s, _ := lvl.Grid.TileAt(world.Pos(row, col)); s != world.Wall {
				t.Fatalf("perimeter tile (%d,%d) = %v, want Wall", row, col, s)
			}
		}
	}
	for row := 0; row < rows; row++ {
		for _, col := range []int{0, cols - 1} {
			if s, _ := lvl.Grid.TileAt(world.Pos(row, col)); s != world.Wall {
				t.Fatalf("perimeter tile (%d,%d) = %v, want Wall", row, col, s)
			}
		}
	}
}

func TestGenerate_DeterministicPerSeed(t *testing.T) {
	a, err := Generate(4, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(4, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatal(err)
	}

	if a.Start != b.Start {
		t.Errorf("starts differ: %v vs %v", a.Start, b.Start)
	}
	if !reflect.DeepEqual(a.Grid.Snapshot(), b.Grid.Snapshot()) {
		t.Error("same seed produced different grids")
	}
}

func TestGenerate_SizeClamped(t *testing.T) {
	if _, err := Generate(0, rand.New(rand.NewSource(1))); err != nil {
		t.Errorf("Generate(0): %v", err)
	}
	if _, err := Generate(99, rand.New(rand.NewSource(1))); err != nil {
		t.Errorf("Generate(99): %v", err)
	}
}
