package source

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/arnavsurve/devicectl/internal/process"
)

// fakeCommander answers commands from canned output keyed by the full
// command line.
type fakeCommander struct {
	mu      sync.Mutex
	outputs map[string]string
	errs    map[string]error
	streams map[string][]string
	calls   []string
}

func newFakeCommander() *fakeCommander {
	return &fakeCommander{
		outputs: map[string]string{},
		errs:    map[string]error{},
		streams: map[string][]string{},
	}
}

func commandKey(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

func (f *fakeCommander) setOutput(cmd, out string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outputs[cmd] = out
}

func (f *fakeCommander) RunSilent(_ context.Context, name string, args []string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := commandKey(name, args)
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	out, ok := f.outputs[key]
	if !ok {
		return nil, fmt.Errorf("unexpected command: %s", key)
	}
	return []byte(out), nil
}

func (f *fakeCommander) RunGJSON(ctx context.Context, name string, args []string) (gjson.Result, error) {
	out, err := f.RunSilent(ctx, name, args)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(out) {
		return gjson.Result{}, fmt.Errorf("json parse: invalid output from %s", name)
	}
	return gjson.ParseBytes(out), nil
}

func (f *fakeCommander) Run(ctx context.Context, name string, args []string) (<-chan process.OutputLine, <-chan error) {
	f.mu.Lock()
	key := commandKey(name, args)
	f.calls = append(f.calls, key)
	lines := f.streams[key]
	f.mu.Unlock()

	out := make(chan process.OutputLine)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errs)
		for _, l := range lines {
			select {
			case out <- process.OutputLine{Stream: "stdout", Content: l}:
			case <-ctx.Done():
				return
			}
		}
		<-ctx.Done()
	}()
	return out, errs
}
