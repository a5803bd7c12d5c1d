package kube

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/kship/internal/models"
	"github.com/MrSnakeDoc/kship/internal/runner"
)

func settings(proxy string) *models.Settings {
	return &models.Settings{
		Namespace: "shop-staging",
		Context:   "staging-cluster",
		ImageRepo: "registry.example.com/shop",
		ImageTag:  "abc123",
		Proxy:     proxy,
		Env:       map[string]string{"RAILS_ENV": "staging", "A": "1"},
	}
}

func TestApplyNamespace(t *testing.T) {
	for _, proxy := range []string{"", "http://proxy:3128"} {
		t.Run("proxy="+proxy, func(t *testing.T) {
			m := runner.NewMockRunner()
			require.NoError(t, New(settings(proxy), m).ApplyNamespace(context.Background()))

			require.Len(t, m.Commands, 2)
			render, apply := m.Commands[0], m.Commands[1]

			assert.Equal(t, []string{"create", "namespace", "shop-staging", "--dry-run=client", "-o", "yaml"}, render.Args)
			assert.Empty(t, render.Env)
			assert.Equal(t, []string{"apply", "-f", "-", "--context=staging-cluster"}, apply.Args)
			assert.Equal(t, runner.NoDeadline, apply.Timeout)

			if proxy == "" {
				assert.Empty(t, apply.Env)
			} else {
				assert.Equal(t, []string{"HTTPS_PROXY=" + proxy}, apply.Env)
			}
		})
	}
}

func TestGetPod(t *testing.T) {
	m := runner.NewMockRunner()
	k := New(settings(""), m)
	key := runner.Key("kubectl", "get", "pod", "dev-bash", "-o", "json", "--ignore-not-found",
		"--context=staging-cluster", "--namespace=shop-staging")

	pod, err := k.GetPod(context.Background(), "dev-bash")
	require.NoError(t, err)
	assert.Nil(t, pod)

	m.AddResponse(key, []byte(`{"metadata":{"name":"dev-bash"},"status":{"startTime":"2026-10-15T08:30:00Z"}}`), nil)
	pod, err = k.GetPod(context.Background(), "dev-bash")
	require.NoError(t, err)
	require.NotNil(t, pod)
	require.NotNil(t, pod.Status.StartTime)
	assert.Equal(t, time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC), pod.Status.StartTime.UTC())

	m.AddResponse(key, []byte("Unauthorized"), errors.New("exit status 1"))
	_, err = k.GetPod(context.Background(), "dev-bash")
	assert.ErrorContains(t, err, "Unauthorized")
}

func TestRunPodCommand(t *testing.T) {
	s := settings("http://proxy:3128")
	s.PodOverrides = `{"spec":{"nodeSelector":{"pool":"debug"}}}`

	c := New(s, runner.NewMockRunner()).RunPodCommand("dev-rake", []string{"rake", "db:migrate"})

	assert.Equal(t, []string{"HTTPS_PROXY=http://proxy:3128"}, c.Env)
	assert.Equal(t, []string{
		"run", "dev-rake", "--rm", "-i", "--tty", "--restart=Never",
		`--overrides={"spec":{"nodeSelector":{"pool":"debug"}}}`,
		"--context=staging-cluster", "--namespace=shop-staging",
		"--image", "registry.example.com/shop:abc123",
		"--env", "A=1", "--env", "RAILS_ENV=staging",
		"--", "rake", "db:migrate",
	}, c.Args)
}

func TestRunPodCommand_NoOverrides(t *testing.T) {
	c := New(settings(""), runner.NewMockRunner()).RunPodCommand("p", []string{"bash"})
	for _, a := range c.Args {
		assert.NotContains(t, a, "--overrides")
	}
	assert.Nil(t, c.Env)
}

func TestDeleteNamespaceAndContext(t *testing.T) {
	m := runner.NewMockRunner()
	k := New(settings("http://proxy:3128"), m)

	require.NoError(t, k.DeleteNamespace(context.Background()))
	require.NoError(t, k.DeleteContext(context.Background()))

	assert.True(t, m.VerifyCommand("kubectl", "delete", "namespace", "shop-staging", "--context=staging-cluster"))
	assert.True(t, m.VerifyCommand("kubectl", "config", "delete-context", "staging-cluster"))
	assert.Equal(t, []string{"HTTPS_PROXY=http://proxy:3128"}, m.Commands[0].Env)
	assert.Empty(t, m.Commands[1].Env)
	assert.Equal(t, runner.NoDeadline, m.Commands[0].Timeout, "namespace deletion can take minutes")
}

func TestAttachAndDeletePod(t *testing.T) {
	m := runner.NewMockRunner()
	k := New(settings(""), m)

	require.NoError(t, k.AttachPod(context.Background(), "p"))
	require.NoError(t, k.DeletePod(context.Background(), "p"))

	assert.True(t, m.VerifyCommand("kubectl", "attach", "p", "-i", "--tty", "-c", "p",
		"--context=staging-cluster", "--namespace=shop-staging"))
	assert.True(t, m.VerifyCommand("kubectl", "delete", "pod", "p",
		"--context=staging-cluster", "--namespace=shop-staging"))
	assert.Equal(t, runner.Stream, m.Commands[0].Mode)
	assert.Equal(t, runner.NoDeadline, m.Commands[0].Timeout)
	assert.Equal(t, runner.NoDeadline, m.Commands[1].Timeout)
}
