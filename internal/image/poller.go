package image

import (
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/MrSnakeDoc/kship/internal/logger"
	"github.com/MrSnakeDoc/kship/internal/progress"
)

var ErrImageNotReady = errors.New("image not published in time")

// Poller waits for an image tag to be published.
type Poller struct {
	Probe     Probe
	Indicator progress.Indicator
	Repo      string
	Interval  time.Duration
	Timeout   time.Duration
}

// WaitUntilReady checks right away, then every Interval, until the probe
// succeeds, Timeout elapses (ErrImageNotReady) or ctx is cancelled.
func (p *Poller) WaitUntilReady(ctx context.Context, tag string) error {
	ref := p.Repo + ":" + tag
	logger.Step("Checking image %s is available...", logger.Highlight(ref))

	indicator := p.Indicator
	if indicator == nil {
		indicator = progress.Plain{}
	}

	return indicator.Run(ctx, "Waiting for "+ref, func(ctx context.Context) error {
		attempts := 0
		err := wait.PollUntilContextTimeout(ctx, p.Interval, p.Timeout, true, func(ctx context.Context) (bool, error) {
			attempts++
			ok, err := p.Probe.Available(ctx, p.Repo, tag)
			if errors.Is(err, ErrInvalidReference) || errors.Is(err, ErrProbeUnavailable) {
				return false, err
			}
			if err != nil {
				logger.Debug("probe %d for %s failed: %v", attempts, ref, err)
				return false, nil
			}
			return ok, nil
		})

		switch {
		case err == nil:
			logger.Debug("%s available after %d probe(s)", ref, attempts)
			return nil
		case ctx.Err() != nil:
			return fmt.Errorf("waiting for %s: %w", ref, ctx.Err())
		case wait.Interrupted(err):
			return fmt.Errorf("%w: %s after %s", ErrImageNotReady, ref, p.Timeout)
		default:
			return err
		}
	})
}
