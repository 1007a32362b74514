package player

import (
	"context"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"mpv", "mpv"},
		{"vlc", "vlc"},
		{"iina", "iina"},
		{"celluloid", "celluloid"},
		{"notepad", "mpv"},
	}
	for _, tt := range tests {
		if got := New(tt.name).Name(); got != tt.want {
			t.Errorf("New(%q).Name() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMPVArgsURLLast(t *testing.T) {
	req := Request{URL: "http://x/video.mp4", Title: "S01E01", Width: 1280, Height: 600}
	args := mpvArgs(req, "/tmp/sock")

	n := len(args)
	if args[n-2] != "--" || args[n-1] != req.URL {
		t.Fatalf("URL must follow --, got %v", args[n-2:])
	}

	found := false
	for _, a := range args {
		if a == "--geometry=1280x600" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing geometry in %v", args)
	}
}

func TestArgsWithoutSize(t *testing.T) {
	req := Request{URL: "http://x/video.mp4", Title: "t"}
	for _, args := range [][]string{mpvArgs(req, "/tmp/sock"), genericArgs(req), vlcArgs(req)} {
		for _, a := range args {
			if a == "--geometry=" || a == "--width" {
				t.Errorf("size flag present without size: %v", args)
			}
		}
		if args[len(args)-1] != req.URL {
			t.Errorf("URL not last: %v", args)
		}
	}
}

func TestPlayRefusesBadURLs(t *testing.T) {
	for _, p := range []Player{&MPV{}, &VLC{}, &Generic{name: "iina"}} {
		for _, url := range []string{"", "--script=evil.lua", "file:///etc/passwd"} {
			if _, err := p.Play(context.Background(), Request{URL: url}); err == nil {
				t.Errorf("%s.Play(%q) should fail", p.Name(), url)
			}
		}
	}
}

func TestApplyEvent(t *testing.T) {
	var res Result
	res = applyEvent(res, []byte(`{"event":"property-change","id":1,"name":"time-pos","data":12.5}`))
	res = applyEvent(res, []byte(`{"event":"property-change","id":2,"name":"duration","data":1320}`))
	res = applyEvent(res, []byte(`{"request_id":100,"error":"success"}`))
	res = applyEvent(res, []byte(`not json`))
	res = applyEvent(res, []byte(`{"event":"property-change","id":1,"name":"time-pos","data":null}`))

	if res.Position != 12.5 {
		t.Errorf("Position = %v, want 12.5", res.Position)
	}
	if res.Duration != 1320 {
		t.Errorf("Duration = %v, want 1320", res.Duration)
	}
}
