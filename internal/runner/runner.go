package runner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// Runner executes the analysis engine against a solution. Modeled as an
// interface so the pipeline can be exercised without spawning processes.
type Runner interface {
	Run(solutionPath, outputPath string) error
}

// ExecRunner launches the cached engine binary directly (no shell) and
// blocks until it exits. The child inherits stdout and stderr; nothing is
// captured. No timeout is enforced - a hung engine hangs the run.
type ExecRunner struct {
	Binary string
}

func (r *ExecRunner) Run(solutionPath, outputPath string) error {
	cmd := exec.Command(r.Binary, solutionPath, "-o="+outputPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		// The engine reports through its output file; a non-zero exit code
		// alone does not abort the run. Only a failure to launch does.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return fmt.Errorf("failed to launch analysis engine: %w", err)
	}

	return nil
}

// OutputPath builds a fresh report path in the temp directory so concurrent
// runs on the same host never collide.
func OutputPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("codecutter-%s.xml", uuid.NewString()))
}
