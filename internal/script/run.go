package script

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"ansiedit/internal/edit"
	"ansiedit/internal/logger"
)

// Result is what a script run produced.
type Result struct {
	Output   []string
	Executed int
	Failed   int
}

type statement struct {
	line int
	cmd  Command
	args []int
}

// parse checks every line of src against the registry. Blank lines and
// lines starting with '#' are skipped.
func parse(src string) ([]statement, error) {
	var (
		stmts []statement
		errs  error
	)
	sc := bufio.NewScanner(strings.NewReader(src))
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		cmd, ok := Lookup(fields[0])
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %q: %w", line, fields[0], ErrUnknownCommand))
			continue
		}
		if len(fields)-1 != cmd.Args {
			errs = multierr.Append(errs, fmt.Errorf("line %d: usage %q: %w", line, cmd.Usage, ErrArguments))
			continue
		}
		args := make([]int, cmd.Args)
		bad := false
		for i, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("line %d: argument %d: %w", line, i+1, err))
				bad = true
				break
			}
			args[i] = v
		}
		if !bad {
			stmts = append(stmts, statement{line: line, cmd: cmd, args: args})
		}
	}
	if err := sc.Err(); err != nil {
		errs = multierr.Append(errs, err)
	}
	return stmts, errs
}

// Run executes src against the handle. A script that does not parse runs
// nothing. Otherwise every command runs, failures are collected, and the
// successful edits commit as one undo step. undo and redo close the step
// in progress before they run.
func Run(ctx context.Context, h *edit.Handle, src string) (Result, error) {
	var res Result
	stmts, err := parse(src)
	if err != nil {
		return res, err
	}

	log := logger.L(ctx)
	err = h.Do(func(s *edit.State) error {
		var errs error
		env := &Env{State: s}
		s.BeginAtomicUndo("Script")
		for _, st := range stmts {
			if isHistory(st.cmd.Name) {
				s.EndAtomicUndo()
			}
			err := st.cmd.Run(env, st.args)
			if isHistory(st.cmd.Name) {
				s.BeginAtomicUndo("Script")
			}
			res.Executed++
			if err != nil {
				res.Failed++
				log.Debug("script command failed", zap.Int("line", st.line), zap.String("command", st.cmd.Name), zap.Error(err))
				errs = multierr.Append(errs, fmt.Errorf("line %d: %s: %w", st.line, st.cmd.Name, err))
			}
		}
		s.EndAtomicUndo()
		res.Output = env.output
		return errs
	})
	log.Debug("script finished", zap.Int("executed", res.Executed), zap.Int("failed", res.Failed))
	return res, err
}
