package agent

import (
	log "github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/stack"

	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
	"github.com/minh11221/Chip-Challenge/pkg/game/env"
)

// recentAvoidSpan is how far back greedy movement looks when steering away
// from just-visited cells.
const recentAvoidSpan = 3

// Robot is the planning agent. It owns all of its mutable state; run one
// Robot per Environment.
type Robot struct {
	env       *env.Environment
	knowledge *Knowledge
	plan      *stack.Stack[world.Direction]
	recent    *RecentWindow
}

// NewRobot creates a robot bound to an environment
func NewRobot(e *env.Environment) *Robot {
	return &Robot{
		env:       e,
		knowledge: NewKnowledge(),
		plan:      stack.New[world.Direction](),
		recent:    NewRecentWindow(),
	}
}

// Knowledge exposes the robot's accumulated world knowledge, read-only by
// convention. Renderers use it to draw the agent's view of the map.
func (r *Robot) Knowledge() *Knowledge {
	return r.knowledge
}

// NextAction runs one decision tick and returns exactly one action. It never
// panics out: any internal fault is logged and converted to DoNothing so the
// host simulation loop keeps running.
func (r *Robot) NextAction() (action env.Action) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("decision tick fault, doing nothing: %v", rec)
			action = env.DoNothing
		}
	}()

	pos := r.env.RobotPosition()

	r.knowledge.Observe(pos, r.env.NeighborPositions(pos), r.env.NeighborTiles(), r.env.RobotHoldings())
	r.knowledge.CountVisit(pos)
	r.recent.Record(pos)

	stuck := r.recent.Oscillating() || r.recent.Revisiting(pos)
	if stuck {
		log.Debugf("stuck at %v, recovery enabled this tick", pos)
	}

	// Replay the buffered plan while the next move still looks legal
	// against fresh knowledge. A conflict means the plan was computed
	// through a cell that turned out impassable: discard and replan.
	if r.plan.Size() > 0 {
		dir := r.plan.Pop()
		if r.moveLooksLegal(pos, dir) {
			return env.ActionForDirection(dir)
		}
		log.Debugf("buffered plan stale at %v, replanning", pos)
		r.clearPlan()
	}

	return r.decide(pos, stuck)
}

// decide is the goal prioritizer: finish, chips, keys, doors-when-stuck,
// exploration, in that fixed order.
func (r *Robot) decide(pos world.Position, stuck bool) env.Action {
	if r.env.NumRemainingChips() == 0 {
		return r.finishPhase(pos, stuck)
	}

	if a, ok := r.collectNearest(pos, world.Chip); ok {
		return a
	}

	if a, ok := r.collectKeys(pos); ok {
		return a
	}

	if stuck {
		if a, ok := r.doorDetour(pos); ok {
			return a
		}
	}

	return r.explore(pos)
}

// finishPhase drives toward the goal door once all chips are collected
func (r *Robot) finishPhase(pos world.Position, stuck bool) env.Action {
	goal, found := r.goalPosition()
	if !found {
		log.Debug("all chips collected but goal unknown, searching")
		if stuck {
			if a, ok := r.doorDetour(pos); ok {
				return a
			}
		}
		return r.explore(pos)
	}

	if pos == goal {
		return env.DoNothing
	}

	if stuck {
		if a, ok := r.doorDetour(pos); ok {
			return a
		}
		// Greedy goal pursuit is what got us stuck; widen the search.
		return r.explore(pos)
	}

	return r.moveToward(pos, goal)
}

// goalPosition locates the goal door: direct query first, then the
// knowledge store, then the full-map fallback.
func (r *Robot) goalPosition() (world.Position, bool) {
	if goal, ok := r.env.GoalPosition(); ok {
		return goal, true
	}

	for p, s := range r.knowledge.TilesSnapshot() {
		if s == world.DoorGoal {
			return p, true
		}
	}

	for p, s := range r.env.Tiles() {
		if s == world.DoorGoal {
			return p, true
		}
	}

	return world.Position{}, false
}

// collectNearest plans to the nearest reachable tile of the given status and
// buffers the path. The second return is false when none is reachable.
func (r *Robot) collectNearest(pos world.Position, status world.TileStatus) (env.Action, bool) {
	candidates := r.env.PositionsByStatus()[status]
	if len(candidates) == 0 {
		return env.DoNothing, false
	}

	target, path, ok := nearestReachable(pos, candidates, r.env.NeighborPositions, r.knownWorld(), r.passable())
	if !ok {
		return env.DoNothing, false
	}

	log.Debugf("heading for %v at %v, %d moves", status, target, len(path))
	return r.loadPlan(path), true
}

// collectKeys plans to the nearest reachable key of any color
func (r *Robot) collectKeys(pos world.Position) (env.Action, bool) {
	byStatus := r.env.PositionsByStatus()
	var candidates []world.Position
	for _, key := range world.AllKeys() {
		candidates = append(candidates, byStatus[key]...)
	}
	if len(candidates) == 0 {
		return env.DoNothing, false
	}

	target, path, ok := nearestReachable(pos, candidates, r.env.NeighborPositions, r.knownWorld(), r.passable())
	if !ok {
		return env.DoNothing, false
	}

	log.Debugf("heading for key at %v, %d moves", target, len(path))
	return r.loadPlan(path), true
}

// doorDetour targets a door the robot holds the key for, preferring an
// unvisited one and otherwise the least-visited. Used only when stuck: an
// openable door is the likeliest way out of a pocket of the map.
func (r *Robot) doorDetour(pos world.Position) (env.Action, bool) {
	byStatus := r.env.PositionsByStatus()

	var openable []world.Position
	for _, door := range world.AllColorDoors() {
		key, _ := door.KeyForDoor()
		if !r.knowledge.Holdings().Has(key) {
			continue
		}
		openable = append(openable, byStatus[door]...)
	}
	if len(openable) == 0 {
		return env.DoNothing, false
	}

	for _, door := range openable {
		if !r.knowledge.Visited(door) {
			log.Debugf("detour to unvisited door at %v", door)
			return r.moveToward(pos, door), true
		}
	}

	least := openable[0]
	for _, door := range openable[1:] {
		if r.knowledge.VisitCount(door) < r.knowledge.VisitCount(least) {
			least = door
		}
	}
	log.Debugf("detour to least-visited door at %v", least)
	return r.moveToward(pos, least), true
}

// moveToward is the shared escalation ladder for reaching a target:
// full plan, plan to a cell adjacent to the target, greedy step, explore.
func (r *Robot) moveToward(pos, target world.Position) env.Action {
	tiles := r.knownWorld()
	passable := r.passable()

	if path := FindPath(pos, target, r.env.NeighborPositions, tiles, passable); len(path) > 0 {
		return r.loadPlan(path)
	}

	// The target itself may be unreachable (e.g. a door we cannot enter
	// yet); standing next to it can still be progress.
	adjacent := r.approachableNeighbors(target, tiles, passable)
	if _, path, ok := nearestReachable(pos, adjacent, r.env.NeighborPositions, tiles, passable); ok {
		return r.loadPlan(path)
	}

	if a, ok := r.greedyStep(pos, target); ok {
		return a
	}

	return r.explore(pos)
}

// approachableNeighbors lists cells grid-adjacent to the target that are
// passable, or unknown and therefore assumed passable.
func (r *Robot) approachableNeighbors(target world.Position,
	tiles map[world.Position]world.TileStatus, passable func(world.TileStatus) bool) []world.Position {

	var out []world.Position
	for _, p := range target.Adjacent() {
		status, known := tiles[p]
		if !known || passable(status) {
			out = append(out, p)
		}
	}
	return out
}

// greedyStep picks the passable, not-recently-visited neighbor closest to
// the target by Manhattan distance.
func (r *Robot) greedyStep(pos, target world.Position) (env.Action, bool) {
	neighbors := r.env.NeighborPositions(pos)
	neighborTiles := r.env.NeighborTiles()
	passable := r.passable()

	bestDist := -1
	var bestDir world.Direction
	for _, dir := range world.AllDirections() {
		next, ok := neighbors[dir]
		if !ok {
			continue
		}
		status, ok := neighborTiles[dir]
		if !ok || !passable(status) {
			continue
		}
		if r.recent.SeenWithin(next, recentAvoidSpan) {
			continue
		}

		dist := next.Manhattan(target)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			bestDir = dir
		}
	}

	if bestDist < 0 {
		return env.DoNothing, false
	}
	return env.ActionForDirection(bestDir), true
}

// explore is the last-resort movement ladder: adjacent unvisited cell,
// least-visited known cell, any not-recently-visited neighbor, no-op.
func (r *Robot) explore(pos world.Position) env.Action {
	neighbors := r.env.NeighborPositions(pos)
	neighborTiles := r.env.NeighborTiles()
	passable := r.passable()

	for _, dir := range world.AllDirections() {
		next, ok := neighbors[dir]
		if !ok {
			continue
		}
		status, ok := neighborTiles[dir]
		if !ok || !passable(status) {
			continue
		}
		if !r.knowledge.Visited(next) {
			log.Debugf("exploring unvisited %v", next)
			return env.ActionForDirection(dir)
		}
	}

	if target, ok := r.leastVisitedKnown(pos, passable); ok {
		if path := FindPath(pos, target, r.env.NeighborPositions, r.knownWorld(), passable); len(path) > 0 {
			log.Debugf("exploring toward least-visited %v", target)
			return r.loadPlan(path)
		}
	}

	for _, dir := range world.AllDirections() {
		next, ok := neighbors[dir]
		if !ok {
			continue
		}
		status, ok := neighborTiles[dir]
		if !ok || !passable(status) {
			continue
		}
		if !r.recent.SeenWithin(next, recentAvoidSpan) {
			return env.ActionForDirection(dir)
		}
	}

	log.Debug("no move available, doing nothing")
	return env.DoNothing
}

// leastVisitedKnown scans the knowledge store for the passable cell with the
// fewest visits, in deterministic row-major order.
func (r *Robot) leastVisitedKnown(pos world.Position, passable func(world.TileStatus) bool) (world.Position, bool) {
	var best world.Position
	bestVisits := -1

	tiles := r.knowledge.TilesSnapshot()
	for _, p := range sortedPositions(tiles) {
		if p == pos || !passable(tiles[p]) {
			continue
		}
		visits := r.knowledge.VisitCount(p)
		if bestVisits < 0 || visits < bestVisits {
			best = p
			bestVisits = visits
		}
	}

	return best, bestVisits >= 0
}

// loadPlan buffers a path (first move on top of the stack) and pops the
// first action.
func (r *Robot) loadPlan(path []world.Direction) env.Action {
	r.clearPlan()
	for i := len(path) - 1; i >= 0; i-- {
		r.plan.Push(path[i])
	}
	return env.ActionForDirection(r.plan.Pop())
}

// clearPlan drops any buffered moves
func (r *Robot) clearPlan() {
	for r.plan.Size() > 0 {
		r.plan.Pop()
	}
}

// moveLooksLegal re-checks a buffered move against fresh knowledge. Unknown
// destinations stay optimistically legal; known ones must be passable now.
func (r *Robot) moveLooksLegal(pos world.Position, dir world.Direction) bool {
	dest := pos.Translate(dir)
	status, known := r.knowledge.TileAt(dest)
	if !known {
		return true
	}
	return Passable(status, r.knowledge.Holdings(), r.env.NumRemainingChips())
}

// passable returns the passability oracle bound to the robot's current
// inventory and the environment's chip count.
func (r *Robot) passable() func(world.TileStatus) bool {
	holdings := r.knowledge.Holdings()
	remaining := r.env.NumRemainingChips()
	return func(s world.TileStatus) bool {
		return Passable(s, holdings, remaining)
	}
}

// knownWorld merges the knowledge store with the environment's full map
// when one is available. The overlay wins: it is the fresher source.
func (r *Robot) knownWorld() map[world.Position]world.TileStatus {
	tiles := r.knowledge.TilesSnapshot()
	for p, s := range r.env.Tiles() {
		tiles[p] = s
	}
	return tiles
}
