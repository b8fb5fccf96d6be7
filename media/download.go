package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/andkntr/youtube-comments-extract/model"
)

const (
	audioExtension = "m4a"
	muxedExtension = "mp4"
)

// Artifact is a materialized download. The caller owns it for the lifetime
// of one request; Discard must be called once the file has been fully
// handed off, and also releases the workspace after a failed hand-off.
type Artifact struct {
	// Path is the produced media file
	Path string

	// Title is the source-reported video title, used to name the
	// delivered artifact
	Title string

	dir string
}

// Discard removes the artifact's temporary workspace. Best-effort: failures
// are logged, never raised, so cleanup can never mask a delivered artifact.
func (a *Artifact) Discard() {
	if a == nil || a.dir == "" {
		return
	}
	if err := os.RemoveAll(a.dir); err != nil {
		log.Warn().Err(err).Str("dir", a.dir).Msg("Failed to remove download workspace")
	}
	a.dir = ""
}

// Orchestrator materializes a chosen encoding into an isolated temporary
// workspace.
type Orchestrator struct {
	runner Runner
}

// NewOrchestrator creates an orchestrator backed by the given extractor
// runner.
func NewOrchestrator(runner Runner) *Orchestrator {
	return &Orchestrator{runner: runner}
}

// Materialize downloads the encoding named by formatCode into a fresh
// temporary directory. expectedKind decides the target extension: audio-only
// downloads are remuxed to m4a, everything else is merged into an mp4
// container (fetching the best audio stream separately when the chosen
// format carries none). On failure the workspace is removed before the
// error is returned; no artifact leaks.
func (o *Orchestrator) Materialize(ctx context.Context, videoURL, formatCode string, expectedKind model.StreamKind) (*Artifact, error) {
	if videoURL == "" || formatCode == "" {
		return nil, fmt.Errorf("empty video URL or format code: %w", model.ErrInvalidInput)
	}

	dir, err := os.MkdirTemp("", "media-"+uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("create download workspace: %w", err)
	}

	ext := muxedExtension
	if expectedKind == model.KindAudioOnly {
		ext = audioExtension
	}

	log.Info().
		Str("url", videoURL).
		Str("format_code", formatCode).
		Str("kind", string(expectedKind)).
		Str("dir", dir).
		Msg("Materializing download")

	args := []string{
		"--no-warnings",
		"--no-simulate",
		"--print", "title",
		"-o", filepath.Join(dir, "media.%(ext)s"),
	}
	if expectedKind == model.KindAudioOnly {
		args = append(args, "-f", formatCode, "-x", "--audio-format", audioExtension)
	} else {
		args = append(args, "-f", formatCode+"+bestaudio/best", "--merge-output-format", muxedExtension)
	}
	args = append(args, videoURL)

	stdout, _, err := o.runner.Run(ctx, args...)
	if err != nil {
		removeWorkspace(dir)
		return nil, fmt.Errorf("materialize format %s: %w", formatCode, err)
	}

	title := firstLine(stdout)

	path := filepath.Join(dir, "media."+ext)
	if _, statErr := os.Stat(path); statErr != nil {
		// The extractor may have kept the source container extension.
		matches, _ := filepath.Glob(filepath.Join(dir, "media.*"))
		if len(matches) == 0 {
			removeWorkspace(dir)
			return nil, fmt.Errorf("materialize format %s: no output file produced", formatCode)
		}
		path = matches[0]
	}

	log.Info().Str("path", path).Str("title", title).Msg("Download materialized")

	return &Artifact{
		Path:  path,
		Title: title,
		dir:   dir,
	}, nil
}

func removeWorkspace(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("Failed to remove download workspace")
	}
}

func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
