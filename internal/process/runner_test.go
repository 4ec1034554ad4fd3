package process

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSilent(t *testing.T) {
	r := NewRunner(nil)

	out, err := r.RunSilent(context.Background(), "sh", []string{"-c", "echo hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))

	_, err = r.RunSilent(context.Background(), "sh", []string{"-c", "echo boom >&2; exit 3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunStreamsLines(t *testing.T) {
	r := NewRunner(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lines, errs := r.Run(ctx, "sh", []string{"-c", "printf 'one\\ntwo\\n'"})

	var got []string
	for l := range lines {
		got = append(got, l.Content)
	}
	assert.Equal(t, []string{"one", "two"}, got)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestRunReportsStartFailure(t *testing.T) {
	r := NewRunner(nil)
	lines, errs := r.Run(context.Background(), "definitely-not-a-command-xyz", nil)

	for range lines {
	}
	err := <-errs
	require.Error(t, err)
}

func TestRunGJSON(t *testing.T) {
	r := NewRunner(nil)

	res, err := r.RunGJSON(context.Background(), "sh", []string{"-c", `echo '{"devices":{"a":[1,2]}}'`})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Get("devices.a.#").Int())

	_, err = r.RunGJSON(context.Background(), "sh", []string{"-c", "echo not json"})
	assert.Error(t, err)
}

func TestCommandExists(t *testing.T) {
	assert.True(t, CommandExists("sh"))
	assert.False(t, CommandExists("definitely-not-a-command-xyz"))
}
