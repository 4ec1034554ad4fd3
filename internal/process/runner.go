package process

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
)

type OutputLine struct {
	Stream  string // "stdout" or "stderr"
	Content string
}

// Runner executes the OS tools that back the device sources (sysctl,
// pmset, simctl, udevadm, ...).
type Runner struct {
	logger *log.Logger
}

func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{logger: logger}
}

func (r *Runner) logCommand(name string, args []string) {
	r.logger.Debug("exec", "cmd", name+" "+strings.Join(args, " "))
}

// Run executes a long-lived command and streams its output line by line.
// Both channels are closed when the command exits or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, name string, args []string) (<-chan OutputLine, <-chan error) {
	r.logCommand(name, args)

	outChan := make(chan OutputLine, 100)
	errChan := make(chan error, 1)

	go func() {
		defer close(outChan)
		defer close(errChan)

		cmd := exec.CommandContext(ctx, name, args...)

		stdout, err := cmd.StdoutPipe()
		if err != nil {
			errChan <- fmt.Errorf("stdout pipe: %w", err)
			return
		}

		stderr, err := cmd.StderrPipe()
		if err != nil {
			errChan <- fmt.Errorf("stderr pipe: %w", err)
			return
		}

		if err := cmd.Start(); err != nil {
			errChan <- fmt.Errorf("start %s: %w", name, err)
			return
		}

		var wg sync.WaitGroup
		wg.Add(2)

		scan := func(stream string, s *bufio.Scanner) {
			defer wg.Done()
			for s.Scan() {
				select {
				case <-ctx.Done():
					return
				case outChan <- OutputLine{Stream: stream, Content: s.Text()}:
				}
			}
		}
		go scan("stdout", bufio.NewScanner(stdout))
		go scan("stderr", bufio.NewScanner(stderr))

		wg.Wait()

		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			errChan <- fmt.Errorf("%s: %w", name, err)
		}
	}()

	return outChan, errChan
}

// RunSilent executes a command and returns stdout. Stderr is included in errors.
func (r *Runner) RunSilent(ctx context.Context, name string, args []string) ([]byte, error) {
	r.logCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}

// RunGJSON executes a command whose stdout is a JSON document.
func (r *Runner) RunGJSON(ctx context.Context, name string, args []string) (gjson.Result, error) {
	output, err := r.RunSilent(ctx, name, args)
	if err != nil {
		return gjson.Result{}, err
	}

	if !gjson.ValidBytes(output) {
		return gjson.Result{}, fmt.Errorf("json parse: invalid output from %s", name)
	}

	return gjson.ParseBytes(output), nil
}

func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
