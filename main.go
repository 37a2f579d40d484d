package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/leonelquinteros/gotext"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/minh11221/Chip-Challenge/pkg/engine/input"
	"github.com/minh11221/Chip-Challenge/pkg/game/agent"
	"github.com/minh11221/Chip-Challenge/pkg/game/devtools"
	"github.com/minh11221/Chip-Challenge/pkg/game/env"
	"github.com/minh11221/Chip-Challenge/pkg/game/levels"
	"github.com/minh11221/Chip-Challenge/pkg/game/renderer"
	ebitenrenderer "github.com/minh11221/Chip-Challenge/pkg/game/renderer/ebiten"
	"github.com/minh11221/Chip-Challenge/pkg/game/renderer/tui"
)

// config holds the harness settings. Flags override anything loaded from a
// YAML config file.
type config struct {
	Map     string `yaml:"map"`
	Ticks   int    `yaml:"ticks"`
	DelayMS int    `yaml:"delay_ms"`
	Render  string `yaml:"render"`
	Fog     bool   `yaml:"fog"`
	HideMap bool   `yaml:"hide_map"`
	Step    bool   `yaml:"step"`
	Verbose bool   `yaml:"verbose"`
	Seed    int64  `yaml:"seed"`
	GenSize int    `yaml:"gen_size"`
	Dump    bool   `yaml:"dump"`
}

func defaultConfig() config {
	return config{
		Map:     levels.Names()[0],
		Ticks:   500,
		DelayMS: 100,
		Render:  "tui",
		GenSize: 3,
	}
}

// loadConfig merges defaults, an optional YAML file, and explicitly set flags
func loadConfig() config {
	defaults := defaultConfig()

	configPath := flag.String("config", "", "path to a YAML config file")
	mapName := flag.String("map", defaults.Map, "built-in level name or map file path")
	ticks := flag.Int("ticks", defaults.Ticks, "maximum decision ticks before giving up")
	delay := flag.Int("delay", defaults.DelayMS, "delay between ticks in milliseconds")
	render := flag.String("render", defaults.Render, "render mode: tui, ebiten or none")
	fog := flag.Bool("fog", defaults.Fog, "draw only tiles the agent has observed")
	hideMap := flag.Bool("hidemap", defaults.HideMap, "withhold the full-map query from the agent")
	step := flag.Bool("step", defaults.Step, "wait for Enter between ticks (q quits, r runs)")
	verbose := flag.Bool("v", defaults.Verbose, "log agent decisions")
	seed := flag.Int64("seed", defaults.Seed, "seed for -map random (0 uses the clock)")
	genSize := flag.Int("gensize", defaults.GenSize, "size of generated levels, 1-8")
	dump := flag.Bool("dump", defaults.Dump, "write the level to map.txt before running")
	flag.Parse()

	fileCfg := defaults
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("reading config: %v", err)
		}
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			log.Fatalf("parsing config: %v", err)
		}
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	flagCfg := config{
		Map:     *mapName,
		Ticks:   *ticks,
		DelayMS: *delay,
		Render:  *render,
		Fog:     *fog,
		HideMap: *hideMap,
		Step:    *step,
		Verbose: *verbose,
		Seed:    *seed,
		GenSize: *genSize,
		Dump:    *dump,
	}
	return mergeConfig(fileCfg, flagCfg, set)
}

// mergeConfig overlays explicitly set flags onto the file config. Unset flags
// still carry the defaults, so fields the file leaves empty fall back to them.
func mergeConfig(fileCfg, flagCfg config, set map[string]bool) config {
	cfg := fileCfg

	if set["map"] || cfg.Map == "" {
		cfg.Map = flagCfg.Map
	}
	if set["ticks"] || cfg.Ticks == 0 {
		cfg.Ticks = flagCfg.Ticks
	}
	if set["delay"] {
		cfg.DelayMS = flagCfg.DelayMS
	}
	if set["render"] || cfg.Render == "" {
		cfg.Render = flagCfg.Render
	}
	if set["fog"] {
		cfg.Fog = flagCfg.Fog
	}
	if set["hidemap"] {
		cfg.HideMap = flagCfg.HideMap
	}
	if set["step"] {
		cfg.Step = flagCfg.Step
	}
	if set["v"] {
		cfg.Verbose = flagCfg.Verbose
	}
	if set["seed"] {
		cfg.Seed = flagCfg.Seed
	}
	if set["gensize"] || cfg.GenSize == 0 {
		cfg.GenSize = flagCfg.GenSize
	}
	if set["dump"] {
		cfg.Dump = flagCfg.Dump
	}

	return cfg
}

// resolveLevel loads a built-in level by name, generates one for "random",
// or loads a map file by path.
func resolveLevel(cfg config) (*levels.Level, error) {
	if cfg.Map == "random" {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		log.Infof("generating level: size %d, seed %d", cfg.GenSize, seed)
		return levels.Generate(cfg.GenSize, rand.New(rand.NewSource(seed)))
	}
	if lvl, ok := levels.ByName(cfg.Map); ok {
		return lvl, nil
	}
	if _, err := os.Stat(cfg.Map); err == nil {
		return levels.LoadFile(cfg.Map)
	}
	return nil, fmt.Errorf("no such level %q (built-ins: %s, or: random)",
		cfg.Map, strings.Join(levels.Names(), ", "))
}

func main() {
	gotext.Configure("locales", "en_US", "default")

	cfg := loadConfig()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	lvl, err := resolveLevel(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Dump {
		path, err := devtools.DumpLevelToFile(lvl)
		if err != nil {
			log.Fatal(err)
		}
		log.Infof("%s: %s", gotext.Get("level dumped"), path)
	}

	e := env.New(lvl.Grid, lvl.Start)
	if cfg.HideMap {
		e.SetFullMapVisible(false)
	}
	robot := agent.NewRobot(e)

	log.Infof("%s: %s (%d chips)", gotext.Get("level"), lvl.Name, e.NumRemainingChips())

	ticks := 0
	switch cfg.Render {
	case "ebiten":
		framesPerTick := cfg.DelayMS * 60 / 1000
		watcher := ebitenrenderer.NewWatcher(e, robot, cfg.Ticks, framesPerTick)
		if err := ebitenrenderer.Run(watcher); err != nil {
			log.Fatal(err)
		}
		ticks = watcher.Tick()
	case "tui":
		ticks = runLoop(e, robot, cfg, tui.New(cfg.Fog))
	case "none":
		ticks = runLoop(e, robot, cfg, nil)
	default:
		log.Fatalf("unknown render mode %q", cfg.Render)
	}

	report(e, ticks)
}

// runLoop drives the tick cycle for terminal and headless modes
func runLoop(e *env.Environment, robot *agent.Robot, cfg config, r renderer.Renderer) int {
	if r != nil {
		r.Init()
	}

	interactive := cfg.Step
	tick := 0
	for ; tick < cfg.Ticks && !e.Done(); tick++ {
		action := robot.NextAction()
		e.Step(action)

		if r != nil {
			r.Draw(renderer.Frame{Env: e, Robot: robot, Tick: tick + 1, LastAction: action})
		}

		if interactive {
			switch input.ReadCommand() {
			case input.CommandQuit:
				return tick + 1
			case input.CommandRun:
				interactive = false
			}
		} else if cfg.DelayMS > 0 && r != nil {
			time.Sleep(time.Duration(cfg.DelayMS) * time.Millisecond)
		}
	}
	return tick
}

// report summarizes the run and sets the exit code
func report(e *env.Environment, ticks int) {
	if e.Done() {
		log.Infof("%s: %d %s, %d %s",
			gotext.Get("goal reached"), ticks, gotext.Get("ticks"), e.Moves(), gotext.Get("moves"))
		return
	}

	log.Warnf("%s: %d %s, %d %s",
		gotext.Get("goal not reached"), e.NumRemainingChips(), gotext.Get("chips left"), ticks, gotext.Get("ticks"))
	os.Exit(1)
}
