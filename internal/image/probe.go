package image

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"strings"
	"time"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/remote/transport"

	"github.com/MrSnakeDoc/kship/internal/models"
	"github.com/MrSnakeDoc/kship/internal/runner"
)

const probeTimeout = 30 * time.Second

var (
	ErrInvalidReference = errors.New("invalid image reference")
	// ErrProbeUnavailable means the probe itself cannot run, e.g. docker is
	// not installed. Retrying will not help.
	ErrProbeUnavailable = errors.New("image probe unavailable")
)

// Probe tells whether repo:tag can be pulled yet.
type Probe interface {
	Available(ctx context.Context, repo, tag string) (bool, error)
}

// NewProbe picks the probe named in the settings.
func NewProbe(kind string, r runner.CommandRunner) Probe {
	if kind == models.ProbeRegistry {
		return &RegistryProbe{}
	}
	return &DockerProbe{Runner: r}
}

// DockerProbe asks the docker CLI for the manifest. A failing inspect means
// the image is not there yet and comes back with docker's output attached.
type DockerProbe struct {
	Runner runner.CommandRunner
}

func (d *DockerProbe) Available(ctx context.Context, repo, tag string) (bool, error) {
	r := d.Runner
	if r == nil {
		r = &runner.ExecRunner{}
	}
	ref := repo + ":" + tag
	out, err := r.Run(ctx, probeTimeout, runner.Capture, "docker", "manifest", "inspect", ref)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, exec.ErrNotFound):
		return false, fmt.Errorf("%w: %v", ErrProbeUnavailable, err)
	default:
		return false, fmt.Errorf("docker manifest inspect %s: %w: %s", ref, err, strings.TrimSpace(string(out)))
	}
}

// RegistryProbe issues a manifest HEAD against the registry using the
// local docker credentials.
type RegistryProbe struct {
	Options []remote.Option
}

func (p *RegistryProbe) Available(ctx context.Context, repo, tag string) (bool, error) {
	ref, err := name.ParseReference(repo + ":" + tag)
	if err != nil {
		return false, fmt.Errorf("%w %s:%s: %v", ErrInvalidReference, repo, tag, err)
	}

	opts := append([]remote.Option{
		remote.WithAuthFromKeychain(authn.DefaultKeychain),
		remote.WithContext(ctx),
	}, p.Options...)

	if _, err := remote.Head(ref, opts...); err != nil {
		var terr *transport.Error
		if errors.As(err, &terr) && terr.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
