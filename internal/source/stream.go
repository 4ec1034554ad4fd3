package source

import (
	"context"

	"github.com/charmbracelet/log"
)

// followCommand runs a long-lived OS monitor command and calls read once
// per stdout line. Readings for which read returns false are dropped.
func followCommand[T any](
	ctx context.Context,
	logger *log.Logger,
	runner Commander,
	name string,
	args []string,
	read func(ctx context.Context, line string) (T, bool),
) <-chan T {
	out := make(chan T)
	lines, errs := runner.Run(ctx, name, args)

	go func() {
		defer close(out)

		for lines != nil || errs != nil {
			select {
			case <-ctx.Done():
				return

			case line, ok := <-lines:
				if !ok {
					lines = nil
					continue
				}
				if line.Stream != "stdout" {
					continue
				}
				v, ok := read(ctx, line.Content)
				if !ok {
					continue
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}

			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				if err != nil {
					logger.Warn("monitor stream ended", "cmd", name, "err", err)
				}
			}
		}
	}()

	return out
}
