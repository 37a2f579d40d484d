package agent

import (
	"math/rand"
	"testing"

	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
	"github.com/minh11221/Chip-Challenge/pkg/game/env"
	"github.com/minh11221/Chip-Challenge/pkg/game/levels"
)

// makeRun builds an environment and a fresh robot from map lines
func makeRun(t *testing.T, lines ...string) (*env.Environment, *Robot) {
	t.Helper()
	lvl, err := levels.Parse("test", lines)
	if err != nil {
		t.Fatalf("parsing test map: %v", err)
	}
	e := env.New(lvl.Grid, lvl.Start)
	return e, NewRobot(e)
}

// drive runs decision ticks until the environment is done or the budget runs
// out, returning the number of ticks used.
func drive(t *testing.T, e *env.Environment, r *Robot, maxTicks int) int {
	t.Helper()
	for tick := 1; tick <= maxTicks; tick++ {
		e.Step(r.NextAction())
		if e.Done() {
			return tick
		}
	}
	return maxTicks
}

func TestRobot_OpenMapChipThenGoal(t *testing.T) {
	e, r := makeRun(t,
		"@..",
		"...",
		"X.*")

	ticks := drive(t, e, r, 10)
	if !e.Done() {
		t.Fatal("robot did not reach the goal within 10 ticks")
	}
	// Chip at (2,2) is 4 moves away, goal 2 more: the plan is optimal here.
	if e.Moves() != 6 {
		t.Errorf("Moves = %d, want 6", e.Moves())
	}
	if ticks != 6 {
		t.Errorf("ticks = %d, want 6", ticks)
	}
}

func TestRobot_CollectsKeyBeforeLockedChip(t *testing.T) {
	e, r := makeRun(t,
		"@.b",
		"#B#",
		"*.X")

	keyTick, chipTick := 0, 0
	for tick := 1; tick <= 30 && !e.Done(); tick++ {
		e.Step(r.NextAction())
		if keyTick == 0 && len(e.RobotHoldings()) > 0 {
			keyTick = tick
		}
		if chipTick == 0 && e.NumRemainingChips() == 0 {
			chipTick = tick
		}
	}

	if !e.Done() {
		t.Fatal("robot did not reach the goal within 30 ticks")
	}
	if keyTick == 0 || chipTick == 0 {
		t.Fatalf("keyTick = %d, chipTick = %d, want both set", keyTick, chipTick)
	}
	if keyTick >= chipTick {
		t.Errorf("key collected at tick %d, chip at tick %d, want key first", keyTick, chipTick)
	}
}

func TestRobot_StalePlanTriggersReplan(t *testing.T) {
	e, r := makeRun(t,
		"@.~.*",
		".....")
	e.SetFullMapVisible(false)

	// Tick 1: the chip is planned straight through unexplored cells.
	first := r.NextAction()
	if first != env.MoveRight {
		t.Fatalf("tick 1 action = %v, want MoveRight (optimistic straight line)", first)
	}
	e.Step(first)

	// Tick 2: the water at (0,2) is now observed, the buffered plan is stale
	// and the robot must detour through the bottom row.
	second := r.NextAction()
	if second != env.MoveDown {
		t.Fatalf("tick 2 action = %v, want MoveDown (replanned around water)", second)
	}
	e.Step(second)

	for tick := 3; tick <= 6; tick++ {
		e.Step(r.NextAction())
	}
	if e.NumRemainingChips() != 0 {
		t.Errorf("chips remaining after detour = %d, want 0", e.NumRemainingChips())
	}
	if e.Moves() != 6 {
		t.Errorf("Moves = %d, want 6 (one wasted move plus the 5-move detour)", e.Moves())
	}
}

func TestRobot_StuckTriggersDoorDetour(t *testing.T) {
	e, r := makeRun(t, "@..B.G*")
	pos := e.RobotPosition()

	// The chip sits behind a green door with no green key anywhere, so the
	// prioritizer has no target. Hand the robot a blue key and a history of
	// oscillation; the recovery move must head for the blue door.
	r.knowledge.Observe(pos, nil, nil, []world.TileStatus{world.KeyBlue})
	a, b := world.Pos(0, 0), world.Pos(0, 1)
	for i := 0; i < stuckSpan; i++ {
		if i%2 == 0 {
			r.recent.Record(a)
		} else {
			r.recent.Record(b)
		}
	}

	action := r.NextAction()
	dir, ok := action.Direction()
	if !ok {
		t.Fatalf("recovery action = %v, want a move", action)
	}

	// The emitted move plus the buffered remainder must land on the door.
	end := pos.Translate(dir)
	for r.plan.Size() > 0 {
		end = end.Translate(r.plan.Pop())
	}
	if end != world.Pos(0, 3) {
		t.Errorf("recovery plan ends at %v, want the blue door at (0,3)", end)
	}
}

func TestRobot_NotStuckExploresWithoutDetour(t *testing.T) {
	_, r := makeRun(t, "@..B.G*")

	r.knowledge.Observe(world.Pos(0, 0), nil, nil, []world.TileStatus{world.KeyBlue})

	action := r.NextAction()
	if action != env.MoveRight {
		t.Fatalf("action = %v, want MoveRight (explore the adjacent cell)", action)
	}
	if r.plan.Size() != 0 {
		t.Errorf("plan size = %d, want 0 (exploration buffers nothing here)", r.plan.Size())
	}
}

func TestRobot_AtGoalEmitsNoOp(t *testing.T) {
	e, r := makeRun(t, "@X")

	first := r.NextAction()
	if first != env.MoveRight {
		t.Fatalf("tick 1 action = %v, want MoveRight (no chips, straight to goal)", first)
	}
	e.Step(first)
	if !e.Done() {
		t.Fatal("run not done after entering the goal")
	}

	if action := r.NextAction(); action != env.DoNothing {
		t.Errorf("action at goal = %v, want DoNothing", action)
	}
	if e.Step(env.DoNothing) {
		t.Error("Step(DoNothing) at goal = true, want false")
	}
}

func TestRobot_SolvesBuiltinLevels(t *testing.T) {
	for _, lvl := range levels.Builtin() {
		t.Run(lvl.Name, func(t *testing.T) {
			e := env.New(lvl.Grid, lvl.Start)
			r := NewRobot(e)

			ticks := drive(t, e, r, 500)
			if !e.Done() {
				t.Fatalf("level %q unsolved after %d ticks, %d chips remaining",
					lvl.Name, ticks, e.NumRemainingChips())
			}
		})
	}
}

func TestRobot_SolvesGeneratedLevel(t *testing.T) {
	lvl, err := levels.Generate(1, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	e := env.New(lvl.Grid, lvl.Start)
	r := NewRobot(e)

	drive(t, e, r, 500)
	if !e.Done() {
		t.Fatalf("generated level unsolved, %d chips remaining", e.NumRemainingChips())
	}
}

func TestRobot_SolvesWithHiddenMap(t *testing.T) {
	lvl, ok := levels.ByName("open-field")
	if !ok {
		t.Fatal("open-field level missing")
	}
	e := env.New(lvl.Grid, lvl.Start)
	e.SetFullMapVisible(false)
	r := NewRobot(e)

	drive(t, e, r, 200)
	if !e.Done() {
		t.Fatalf("hidden-map run unsolved, %d chips remaining", e.NumRemainingChips())
	}
	if r.Knowledge().KnownCount() == 0 {
		t.Error("robot finished without recording any knowledge")
	}
}
