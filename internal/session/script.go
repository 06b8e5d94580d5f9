package session

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/imaging"
	"github.com/ironsheep/grime/internal/ops"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = stderrors.New("quit")

// ScriptError reports the script line that failed.
type ScriptError struct {
	Script string
	Line   int
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Script, e.Line, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// HelpText lists the script commands.
const HelpText = `Commands (arguments in [] may be omitted to use the last image):
  load PATH NAME
  save PATH [NAME]
  brighten DELTA [SRC [DST]]
  greyscale [COMPONENT] [SRC [DST]]    COMPONENT: red, green, blue, value, intensity, luma
  horizontal-flip [SRC [DST]]
  vertical-flip [SRC [DST]]
  rgb-split [SRC [R G B]]
  rgb-combine DST R G B
  blur [SRC [DST]]
  sharpen [SRC [DST]]
  sepia [SRC [DST]]
  dither [SRC [DST]]
  mosaic [SEEDS] [SRC [DST]]
  run SCRIPT
  help
  quit
`

// Exec runs one script line. Blank lines and lines starting with '#' do
// nothing. The quit command returns ErrQuit.
func (s *Session) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "load":
		if len(args) != 2 {
			return argCount(cmd, "2")
		}
		_, err := s.Load(ctx, args[0], args[1])
		return err
	case "save":
		if len(args) < 1 || len(args) > 2 {
			return argCount(cmd, "1 or 2")
		}
		name := ""
		if len(args) == 2 {
			name = args[1]
		}
		_, err := s.Save(ctx, args[0], name)
		return err
	case "run":
		if len(args) != 1 {
			return argCount(cmd, "1")
		}
		return s.RunScript(ctx, args[0])
	case "help":
		_, err := fmt.Fprint(s.out, HelpText)
		return err
	case "quit", "exit":
		return ErrQuit
	}

	op, err := ops.ParseOp(cmd)
	if err != nil {
		return errors.New(errors.ErrCodeUnknownOperation, "invalid command %q, try help", fields[0])
	}
	_, err = s.execOp(ctx, op, cmd, args)
	return err
}

// execOp parses the scalar arguments of op, then resolves its source and
// destination names.
func (s *Session) execOp(ctx context.Context, op ops.Op, cmd string, args []string) ([]string, error) {
	var opArgs ops.Args

	switch op {
	case ops.Brighten:
		if len(args) == 0 {
			return nil, argCount(cmd, "1 to 3")
		}
		delta, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "brighten delta %q is not an integer", args[0])
		}
		opArgs.Delta = delta
		args = args[1:]
	case ops.Mosaic:
		opArgs.Seeds = s.defaultSeeds
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				opArgs.Seeds = n
				args = args[1:]
			}
		}
	case ops.Greyscale:
		// A leading component name is optional; with three arguments it is
		// the only reading.
		if len(args) > 0 {
			c, err := imaging.ParseComponent(args[0])
			switch {
			case err == nil:
				opArgs.Component = &c
				args = args[1:]
			case len(args) == 3:
				return nil, err
			}
		}
	case ops.Combine:
		if len(args) != 4 {
			return nil, argCount(cmd, "4")
		}
		return s.Apply(ctx, op, args[1:], args[:1], opArgs)
	}

	var source string
	if len(args) == 0 {
		source = s.Last()
		if source == "" {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "%s needs a source image", cmd)
		}
	} else {
		source, args = args[0], args[1:]
	}
	if len(args) > op.Outputs() {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"%s takes at most %d destination name(s), got %d", cmd, op.Outputs(), len(args))
	}
	return s.Apply(ctx, op, []string{source}, args, opArgs)
}

func argCount(cmd, want string) error {
	return errors.New(errors.ErrCodeInvalidArgument, "%s command needs %s arguments", cmd, want)
}

// RunScript executes the script file at path line by line, stopping at the
// first failing line. A script may run other scripts but never one that is
// already running.
func (s *Session) RunScript(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "bad script path %s", path)
	}

	s.mu.Lock()
	if s.running[abs] {
		s.mu.Unlock()
		return errors.New(errors.ErrCodeInvalidArgument, "script %s is already running", path)
	}
	s.running[abs] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.running, abs)
		s.mu.Unlock()
	}()

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "the file does not exist: %s", path)
	}
	defer f.Close()

	s.logger.Debug("running script", "path", path)
	return s.Run(ctx, f, path)
}

// Run executes every line of the script read from r. name labels errors.
// It stops at the first failure, which is returned as a *ScriptError, or at
// quit, which returns ErrQuit.
func (s *Session) Run(ctx context.Context, r io.Reader, name string) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.Exec(ctx, scanner.Text())
		if err == nil {
			continue
		}
		if stderrors.Is(err, ErrQuit) {
			return ErrQuit
		}
		return &ScriptError{Script: name, Line: lineNo, Err: err}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "failed to read script %s", name)
	}
	return nil
}
