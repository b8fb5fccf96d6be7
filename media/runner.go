// Package media catalogues a video's downloadable encodings and
// materializes a chosen encoding into a temporary workspace, using yt-dlp
// as a subprocess.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

const (
	defaultYtdlpPath    = "yt-dlp"
	defaultYtdlpTimeout = 10 * time.Minute
)

// Runner executes the media extractor with the given arguments.
// Implementations return captured stdout and stderr; a non-nil error means
// the extractor failed or could not be started.
type Runner interface {
	Run(ctx context.Context, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs yt-dlp as a subprocess.
type ExecRunner struct {
	// Path is the path to the yt-dlp executable. Defaults to "yt-dlp".
	Path string

	// Timeout is the maximum time to wait for yt-dlp. Defaults to 10 minutes.
	Timeout time.Duration
}

// NewExecRunner creates a runner with default path and timeout.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Path:    defaultYtdlpPath,
		Timeout: defaultYtdlpTimeout,
	}
}

// Run executes yt-dlp and captures its output.
func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, []byte, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = defaultYtdlpTimeout
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	path := r.Path
	if path == "" {
		path = defaultYtdlpPath
	}

	cmd := exec.CommandContext(cmdCtx, path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if cmdCtx.Err() != nil {
			return stdout.Bytes(), stderr.Bytes(), fmt.Errorf("yt-dlp: %w", cmdCtx.Err())
		}
		return stdout.Bytes(), stderr.Bytes(), fmt.Errorf("yt-dlp failed: %w: %s", err, stderr.String())
	}

	return stdout.Bytes(), stderr.Bytes(), nil
}
