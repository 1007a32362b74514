package player

import (
	"context"
	"fmt"
	"os/exec"
)

// Generic implements the Player interface for players like iina and celluloid
// that accept mpv-compatible arguments.
type Generic struct {
	name string
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool {
	_, err := exec.LookPath(g.name)
	return err == nil
}

// Play launches the generic player. Position tracking is not supported.
func (g *Generic) Play(ctx context.Context, req Request) (Result, error) {
	if err := checkRequest(req); err != nil {
		return Result{}, err
	}

	cmd := exec.CommandContext(ctx, g.name, genericArgs(req)...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Result{}, nil
		}
		if _, ok := err.(*exec.ExitError); ok {
			return Result{}, nil
		}
		return Result{}, fmt.Errorf("running %s: %w", g.name, err)
	}

	return Result{}, nil
}

func genericArgs(req Request) []string {
	// Both iina and celluloid accept mpv-style flags
	args := []string{"--force-media-title=" + req.Title}
	if g := geometry(req); g != "" {
		args = append(args, "--geometry="+g)
	}
	return append(args, "--", req.URL)
}
