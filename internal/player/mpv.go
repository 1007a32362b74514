package player

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// MPV implements the Player interface for mpv.
// Position is tracked over mpv's IPC socket at a randomized temp path.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool {
	_, err := exec.LookPath("mpv")
	return err == nil
}

// Play launches mpv and returns the final playback position.
func (m *MPV) Play(ctx context.Context, req Request) (Result, error) {
	if err := checkRequest(req); err != nil {
		return Result{}, err
	}

	// Randomized socket dir prevents symlink attacks
	socketDir, err := os.MkdirTemp("", "portal-mpv-*")
	if err != nil {
		return Result{}, fmt.Errorf("creating temp dir for mpv socket: %w", err)
	}
	defer os.RemoveAll(socketDir)

	socketPath := filepath.Join(socketDir, "socket")

	cmd := exec.CommandContext(ctx, "mpv", mpvArgs(req, socketPath)...)
	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("starting mpv: %w", err)
	}
	logrus.WithField("pid", cmd.Process.Pid).Debug("mpv started")

	tracked := make(chan Result, 1)
	go func() {
		tracked <- m.trackPosition(ctx, socketPath)
	}()

	waitErr := cmd.Wait()

	var res Result
	select {
	case res = <-tracked:
	case <-time.After(2 * time.Second):
	}

	if ctx.Err() != nil {
		return res, nil
	}
	if waitErr != nil {
		// mpv exits 4 when the user quits, which is normal
		if exitErr, ok := waitErr.(*exec.ExitError); ok && exitErr.ExitCode() == 4 {
			return res, nil
		}
		return res, fmt.Errorf("mpv exited: %w", waitErr)
	}
	return res, nil
}

func mpvArgs(req Request, socketPath string) []string {
	args := []string{
		"--force-media-title=" + req.Title,
		"--input-ipc-server=" + socketPath,
		"--really-quiet",
		"--no-terminal",
		"--force-window=immediate",
	}
	if g := geometry(req); g != "" {
		args = append(args, "--geometry="+g)
	}
	return append(args, "--", req.URL)
}

// trackPosition observes time-pos and duration over mpv's IPC socket until
// the socket closes.
func (m *MPV) trackPosition(ctx context.Context, socketPath string) Result {
	var res Result

	// Wait for socket to appear
	for i := 0; i < 50; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return res
		case <-time.After(100 * time.Millisecond):
		}
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return res
	}
	defer conn.Close()

	for id, prop := range []string{"time-pos", "duration"} {
		cmd := map[string]interface{}{
			"command":    []interface{}{"observe_property", id + 1, prop},
			"request_id": 100 + id,
		}
		data, _ := json.Marshal(cmd)
		conn.Write(append(data, '\n'))
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		res = applyEvent(res, scanner.Bytes())
	}

	return res
}

// applyEvent folds one IPC line into res.
func applyEvent(res Result, line []byte) Result {
	var event struct {
		Event string  `json:"event"`
		Name  string  `json:"name"`
		Data  float64 `json:"data"`
	}
	if err := json.Unmarshal(line, &event); err != nil {
		return res
	}
	if event.Event != "property-change" || event.Data <= 0 {
		return res
	}
	switch event.Name {
	case "time-pos":
		res.Position = event.Data
	case "duration":
		res.Duration = event.Data
	}
	return res
}
