package exec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Result holds script execution output
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes the Basic Pitch inference scripts with context support
type Runner struct {
	PythonPath string
	ScriptsDir string
}

// NewRunner creates a new script runner. With an empty pythonPath the
// scripts' virtual environment is preferred, falling back to python3.
func NewRunner(pythonPath, scriptsDir string) *Runner {
	if pythonPath == "" {
		venvPython := filepath.Join(scriptsDir, ".venv", "bin", "python")
		if _, err := os.Stat(venvPython); err == nil {
			pythonPath = venvPython
		} else {
			pythonPath = "python3"
		}
	}
	return &Runner{
		PythonPath: pythonPath,
		ScriptsDir: scriptsDir,
	}
}

// RunScript executes a Python script from ScriptsDir and captures its
// output. The returned Result is non-nil even on failure so callers can
// surface stderr.
func (r *Runner) RunScript(ctx context.Context, script string, args ...string) (*Result, error) {
	scriptPath := filepath.Join(r.ScriptsDir, script)
	start := time.Now()

	cmd := exec.CommandContext(ctx, r.PythonPath, append([]string{scriptPath}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
	}

	if err != nil {
		return result, fmt.Errorf("script %s failed: %w", script, err)
	}

	return result, nil
}

// CheckPythonDependency verifies a Python package is importable, used as
// a preflight for basic_pitch before the first conversion.
func (r *Runner) CheckPythonDependency(ctx context.Context, packageName string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.PythonPath, "-c", fmt.Sprintf("import %s", packageName))
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s not installed: %s", packageName, stderr.String())
	}
	return nil
}
