package main

import (
	"errors"
	"os"
	"os/exec"

	cmd "github.com/MrSnakeDoc/kship/internal"
	"github.com/MrSnakeDoc/kship/internal/logger"
	"github.com/MrSnakeDoc/kship/internal/middleware"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	if !errors.Is(err, middleware.ErrLogged) {
		logger.LogError("%s", err)
	}

	// Mirror the status of the external command that failed.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		os.Exit(exitErr.ExitCode())
	}
	os.Exit(1)
}
