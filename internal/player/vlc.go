package player

import (
	"context"
	"fmt"
	"os/exec"
)

// VLC implements the Player interface for VLC media player.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool {
	_, err := exec.LookPath("vlc")
	return err == nil
}

// Play launches VLC. VLC has no IPC position tracking like mpv,
// so the result is always empty.
func (v *VLC) Play(ctx context.Context, req Request) (Result, error) {
	if err := checkRequest(req); err != nil {
		return Result{}, err
	}

	cmd := exec.CommandContext(ctx, "vlc", vlcArgs(req)...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Result{}, nil
		}
		if _, ok := err.(*exec.ExitError); ok {
			return Result{}, nil // VLC exits non-zero on user close
		}
		return Result{}, fmt.Errorf("running vlc: %w", err)
	}

	return Result{}, nil
}

func vlcArgs(req Request) []string {
	args := []string{
		"--meta-title", req.Title,
		"--play-and-exit",
		"--quiet",
	}
	if req.Width > 0 && req.Height > 0 {
		args = append(args, "--width", fmt.Sprint(req.Width), "--height", fmt.Sprint(req.Height))
	}
	return append(args, "--", req.URL)
}
