// Package harness runs a tournament seat's decisions either in-process
// (Unrestricted) or in a sandboxed subprocess (Restricted), both
// implementing engine.Decider. Restricted grounds its process
// lifecycle on a bot-server's subprocess spawner and its timeout
// handling on that server's quartz-clocked NetworkAgent, adding a
// wall-clock deadline and a resident-memory ceiling a bot cannot be
// trusted to enforce on itself.
package harness

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/foldline/holdem-engine/internal/deck"
	"github.com/foldline/holdem-engine/internal/engine"
	"github.com/foldline/holdem-engine/internal/ipc"
)

// Bot is the in-process decision interface an Unrestricted harness
// calls directly, with no isolation boundary.
type Bot interface {
	GetAction(state *engine.PublicGameState, holeCards [2]deck.Card) (engine.ActionType, int)
}

// UnrestrictedHarness calls a Bot's GetAction directly. It trusts the
// bot's process and memory footprint completely; engine.validate still
// corrects any illegal action it returns.
type UnrestrictedHarness struct {
	Bot Bot
}

func (h *UnrestrictedHarness) Decide(seat int, state *engine.PublicGameState, holeCards [2]deck.Card) (engine.ActionType, int) {
	return h.Bot.GetAction(state, holeCards)
}

// fallbackAction returns check if nothing is owed this street, fold
// otherwise, consulting the same legal-action bundle a well-behaved
// bot would use to self-validate before declaring.
func fallbackAction(state *engine.PublicGameState, seat int) engine.ActionType {
	if state.LegalActionsForSeat(seat).CanCheck {
		return engine.Check
	}
	return engine.Fold
}

// RestrictedHarness runs a bot as a subprocess, communicating over
// newline-delimited JSON on stdin/stdout, and enforces a wall-clock
// deadline and a resident-memory ceiling. Any crash, timeout, or limit
// breach kills the process and falls back to check/fold; the next
// Decide call respawns it.
type RestrictedHarness struct {
	Command       []string
	TimeLimit     time.Duration
	MemoryLimitMB int
	Clock         quartz.Clock
	Logger        zerolog.Logger

	mu     sync.Mutex
	id     string
	cmd    *exec.Cmd
	stdin  *ipc.Encoder
	stdout *ipc.Decoder
}

func NewRestrictedHarness(command []string, timeLimit time.Duration, memoryLimitMB int, logger zerolog.Logger) *RestrictedHarness {
	return &RestrictedHarness{
		Command:       command,
		TimeLimit:     timeLimit,
		MemoryLimitMB: memoryLimitMB,
		Clock:         quartz.NewReal(),
		Logger:        logger,
	}
}

func (h *RestrictedHarness) Decide(seat int, state *engine.PublicGameState, holeCards [2]deck.Card) (engine.ActionType, int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cmd == nil {
		if err := h.spawn(); err != nil {
			h.Logger.Error().Err(err).Str("process_id", h.id).Msg("bot process failed to spawn")
			return fallbackAction(state, seat), 0
		}
	}

	type result struct {
		resp ipc.DecisionResponse
		err  error
	}
	done := make(chan result, 1)

	go func() {
		if err := h.stdin.WriteRequest(ipc.DecisionRequest{Seat: seat, State: state, HoleCards: holeCards}); err != nil {
			done <- result{err: err}
			return
		}
		resp, err := h.stdout.ReadResponse()
		done <- result{resp: resp, err: err}
	}()

	deadline := h.Clock.NewTimer(h.TimeLimit).C

	for {
		select {
		case r := <-done:
			if r.err != nil {
				h.Logger.Warn().Err(r.err).Str("process_id", h.id).Msg("bot process crashed or closed stdout")
				h.kill()
				return fallbackAction(state, seat), 0
			}
			return r.resp.ActionType, r.resp.Amount

		case <-deadline:
			h.Logger.Warn().Str("process_id", h.id).Dur("limit", h.TimeLimit).Msg("bot process timed out")
			h.kill()
			return fallbackAction(state, seat), 0

		case <-h.Clock.NewTimer(50 * time.Millisecond).C:
			if h.overMemoryLimit() {
				h.Logger.Warn().Str("process_id", h.id).Int("limitMB", h.MemoryLimitMB).Msg("bot process exceeded memory limit")
				h.kill()
				return fallbackAction(state, seat), 0
			}
		}
	}
}

func (h *RestrictedHarness) spawn() error {
	if len(h.Command) == 0 {
		return fmt.Errorf("no command configured")
	}
	h.id = uuid.NewString()[:8]

	cmd := exec.Command(h.Command[0], h.Command[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting bot process: %w", err)
	}

	h.cmd = cmd
	h.stdin = ipc.NewEncoder(stdin)
	h.stdout = ipc.NewDecoder(stdout)
	h.Logger.Info().Str("process_id", h.id).Strs("command", h.Command).Msg("bot process started")
	return nil
}

// kill terminates the current subprocess, if any, so the next Decide
// call respawns a fresh one.
func (h *RestrictedHarness) kill() {
	if h.cmd == nil || h.cmd.Process == nil {
		return
	}
	_ = h.cmd.Process.Kill()
	_, _ = h.cmd.Process.Wait()
	h.cmd = nil
	h.stdin = nil
	h.stdout = nil
}

// overMemoryLimit reads the subprocess's resident set size from
// /proc/<pid>/status. There is no portable Go library for this in the
// dependency pack, so it is read directly; the format is Linux-only.
func (h *RestrictedHarness) overMemoryLimit() bool {
	if h.cmd == nil || h.cmd.Process == nil || h.MemoryLimitMB <= 0 {
		return false
	}
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/status", h.cmd.Process.Pid))
	if err != nil {
		return false
	}
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return false
		}
		kb, err := strconv.Atoi(fields[1])
		if err != nil {
			return false
		}
		return kb/1024 > h.MemoryLimitMB
	}
	return false
}

// Close terminates any running subprocess.
func (h *RestrictedHarness) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.kill()
}
