package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dragonfruitnetwork/codecutter/internal/config"
	"github.com/dragonfruitnetwork/codecutter/internal/gate"
	"github.com/dragonfruitnetwork/codecutter/internal/logging"
	"github.com/dragonfruitnetwork/codecutter/internal/provision"
	"github.com/dragonfruitnetwork/codecutter/internal/report"
	"github.com/dragonfruitnetwork/codecutter/internal/runner"
)

func runGate(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logging.Init(verbose)

	configPath := ""
	if len(args) > 0 {
		configPath = args[0]
	}

	searchDir, err := toolDir()
	if err != nil {
		return err
	}

	resolver := config.Resolver{SearchDir: searchDir, WorkDir: "."}
	cfg, err := resolver.Resolve(configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve configuration: %w", err)
	}

	ctx := &runContext{
		cfg:         cfg,
		provisioner: provision.New(&provision.HTTPDownloader{}),
		newRunner: func(binary string) runner.Runner {
			return &runner.ExecRunner{Binary: binary}
		},
		out:  os.Stdout,
		exit: os.Exit,
	}

	return ctx.run()
}

// toolDir is the directory the codecutter executable lives in. Both config
// discovery and solution discovery search here, not the working directory.
func toolDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return filepath.Dir(exe), nil
}

// runContext carries the run-scoped collaborators through the pipeline.
// One instance per invocation; no package-level state.
type runContext struct {
	cfg         *config.Config
	provisioner *provision.Provisioner
	newRunner   func(binary string) runner.Runner
	out         io.Writer
	exit        func(int)
}

func (rc *runContext) run() error {
	binary, err := rc.provisioner.Ensure(downloadProgress)
	if err != nil {
		return err
	}
	logging.Logger.Debugf("analysis engine ready at %s", binary)

	outputPath := runner.OutputPath()
	defer func() {
		_ = os.Remove(outputPath)
	}()

	logging.Logger.Debugf("analyzing solution %s", rc.cfg.SolutionFile)
	engine := rc.newRunner(binary)
	if err := engine.Run(rc.cfg.SolutionFile, outputPath); err != nil {
		return err
	}

	rep, err := report.ParseFile(outputPath)
	if err != nil {
		return err
	}

	result, err := gate.Evaluate(rep, rc.cfg.DisplayLevel, rc.cfg.ErrorLevel)
	if err != nil {
		return err
	}

	gate.Render(rc.out, result)

	if result.Failed {
		rc.exit(1)
	}
	return nil
}

func downloadProgress(received, total int64) {
	if total > 0 {
		fmt.Printf("\rDownloading InspectCode: %s / %s", humanize.Bytes(uint64(received)), humanize.Bytes(uint64(total)))
		if received >= total {
			fmt.Println()
		}
	} else {
		fmt.Printf("\rDownloading InspectCode: %s", humanize.Bytes(uint64(received)))
	}
}
