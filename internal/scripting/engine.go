package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for gameplay hooks.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "ai"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Has reports whether a global Lua function is defined.
func (e *Engine) Has(name string) bool {
	return e.vm.GetGlobal(name).Type() == lua.LTFunction
}

// PacingContext is what next_spawn_interval sees when the spawner re-arms.
type PacingContext struct {
	Tick         uint64
	BaseInterval int
	Enemies      int
	Kills        int
}

// NextSpawnInterval calls the Lua next_spawn_interval function. ok is false
// when the function is not defined, fails, or returns something below 1;
// callers then keep the base interval.
func (e *Engine) NextSpawnInterval(ctx PacingContext) (int, bool) {
	fn := e.vm.GetGlobal("next_spawn_interval")
	if fn.Type() != lua.LTFunction {
		return 0, false
	}

	t := e.vm.NewTable()
	t.RawSetString("tick", lua.LNumber(ctx.Tick))
	t.RawSetString("base_interval", lua.LNumber(ctx.BaseInterval))
	t.RawSetString("enemies", lua.LNumber(ctx.Enemies))
	t.RawSetString("kills", lua.LNumber(ctx.Kills))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua next_spawn_interval error", zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, isNum := result.(lua.LNumber)
	if !isNum || int(n) < 1 {
		e.log.Warn("lua next_spawn_interval returned unusable value", zap.String("value", result.String()))
		return 0, false
	}
	return int(n), true
}

// RunSummary is handed to on_game_over when the player is hit.
type RunSummary struct {
	Tick    uint64
	Kills   int
	Shots   int
	Spawned int
}

// GameOverMessage calls the Lua on_game_over function and returns the line
// it produces, or "" when the hook is absent.
func (e *Engine) GameOverMessage(s RunSummary) string {
	fn := e.vm.GetGlobal("on_game_over")
	if fn.Type() != lua.LTFunction {
		return ""
	}

	t := e.vm.NewTable()
	t.RawSetString("tick", lua.LNumber(s.Tick))
	t.RawSetString("kills", lua.LNumber(s.Kills))
	t.RawSetString("shots", lua.LNumber(s.Shots))
	t.RawSetString("spawned", lua.LNumber(s.Spawned))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua on_game_over error", zap.Error(err))
		return ""
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return lua.LVAsString(result)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
