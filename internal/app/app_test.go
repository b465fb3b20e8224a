package app

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/nowplaying/internal/prefs"
	"github.com/five82/nowplaying/internal/presence"
)

const playingBody = `{"success":true,"data":{"listening_to_spotify":true,"spotify":{
"song":"X","artist":"Y","album":"Z","album_art_url":"https://i.scdn.co/image/a",
"track_id":"abc","timestamps":{"start":1000,"end":5000}}}}`

func newLanyard(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/v1/users/")
		body, ok := bodies[id]
		if !ok {
			body = `{"success":false,"error":{"code":"user_not_monitored"}}`
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testOptions(t *testing.T, apiURL string) Options {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf("api_url = %q\npoll_interval = \"1h\"\nprefs_path = %q\n",
		apiURL, filepath.Join(dir, "prefs.toml"))
	if err := os.WriteFile(cfgPath, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return Options{ConfigPath: cfgPath, LogWriter: io.Discard}
}

func TestSetup_AppliesOverrides(t *testing.T) {
	srv := newLanyard(t, nil)
	opts := testOptions(t, srv.URL)
	opts.PollEvery = 3 * time.Second
	opts.PrefsPath = filepath.Join(t.TempDir(), "other.toml")

	rt, err := Setup(opts)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	defer rt.Close()

	if rt.Config.APIURL != srv.URL {
		t.Fatalf("APIURL = %q, want %q", rt.Config.APIURL, srv.URL)
	}
	if rt.Config.PollInterval != 3*time.Second {
		t.Fatalf("PollInterval = %v, want 3s", rt.Config.PollInterval)
	}
	if rt.Config.PrefsPath != opts.PrefsPath {
		t.Fatalf("PrefsPath = %q, want %q", rt.Config.PrefsPath, opts.PrefsPath)
	}
}

func TestSetup_ConsoleLogFormat(t *testing.T) {
	srv := newLanyard(t, nil)
	opts := testOptions(t, srv.URL)
	f, err := os.OpenFile(opts.ConfigPath, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, err := f.WriteString("log_format = \"console\"\n"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	f.Close()

	var buf bytes.Buffer
	opts.LogWriter = &buf
	rt, err := Setup(opts)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	defer rt.Close()

	out := buf.String()
	if !strings.Contains(out, "runtime ready") || strings.Contains(out, `"message"`) {
		t.Fatalf("log output = %q, want console formatting", out)
	}
}

func TestSetup_BadConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_url = ["), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Setup(Options{ConfigPath: path, LogWriter: io.Discard}); err == nil {
		t.Fatalf("Setup returned nil error for invalid config")
	}
}

func TestConfigure_PersistsValidatedID(t *testing.T) {
	srv := newLanyard(t, map[string]string{"123": playingBody})
	opts := testOptions(t, srv.URL)

	if err := Configure(context.Background(), opts, "123"); err != nil {
		t.Fatalf("Configure returned error: %v", err)
	}

	rt, err := Setup(opts)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	defer rt.Close()
	id, _ := rt.Prefs.LoadIdentifier()
	if id != "123" {
		t.Fatalf("persisted id = %q, want 123", id)
	}
}

func TestConfigure_Failures(t *testing.T) {
	srv := newLanyard(t, nil)
	opts := testOptions(t, srv.URL)

	tests := []struct {
		id   string
		want string
	}{
		{"", presence.MessageEmptyIdentifier},
		{"999", presence.MessageUnknownUser},
	}
	for _, tt := range tests {
		err := Configure(context.Background(), opts, tt.id)
		if err == nil || err.Error() != tt.want {
			t.Fatalf("Configure(%q) error = %v, want %q", tt.id, err, tt.want)
		}
	}

	p, _ := prefs.Load(filepath.Join(filepath.Dir(opts.ConfigPath), "prefs.toml"))
	if p.DiscordID != "" {
		t.Fatalf("DiscordID = %q, want nothing persisted", p.DiscordID)
	}
}

func TestConfigure_TransportFailure(t *testing.T) {
	srv := newLanyard(t, nil)
	opts := testOptions(t, srv.URL)
	srv.Close()

	err := Configure(context.Background(), opts, "123")
	if err == nil || !strings.HasPrefix(err.Error(), presence.MessageValidateFailed) {
		t.Fatalf("Configure error = %v, want validate failure", err)
	}
}

func TestReset_ClearsIdentifier(t *testing.T) {
	srv := newLanyard(t, map[string]string{"123": playingBody})
	opts := testOptions(t, srv.URL)
	if err := Configure(context.Background(), opts, "123"); err != nil {
		t.Fatalf("Configure returned error: %v", err)
	}

	if err := Reset(opts); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}

	rt, err := Setup(opts)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	defer rt.Close()
	if id, _ := rt.Prefs.LoadIdentifier(); id != "" {
		t.Fatalf("persisted id = %q, want cleared", id)
	}
}

func TestStatus(t *testing.T) {
	srv := newLanyard(t, map[string]string{
		"123": playingBody,
		"456": `{"success":true,"data":{"listening_to_spotify":false,"spotify":null}}`,
	})
	opts := testOptions(t, srv.URL)

	rt, err := Setup(opts)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	defer rt.Close()

	var buf bytes.Buffer
	if err := rt.status(context.Background(), &buf, time.UnixMilli(2000)); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("status error = %v, want ErrNotConfigured", err)
	}

	_ = rt.Prefs.SaveIdentifier("123")
	if err := rt.status(context.Background(), &buf, time.UnixMilli(2000)); err != nil {
		t.Fatalf("status returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"♫ X", "Y · Z", "0:01 / 0:04", "https://open.spotify.com/track/abc"} {
		if !strings.Contains(out, want) {
			t.Fatalf("status output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	_ = rt.Prefs.SaveIdentifier("456")
	if err := rt.status(context.Background(), &buf, time.Now()); err != nil {
		t.Fatalf("status returned error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "Not currently playing any music on Spotify." {
		t.Fatalf("status output = %q, want not playing", buf.String())
	}
}

func TestWatch_StreamsSignalsAndAcceptsIntents(t *testing.T) {
	srv := newLanyard(t, map[string]string{"123": playingBody})
	opts := testOptions(t, srv.URL)

	rt, err := Setup(opts)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	defer rt.Close()
	_ = rt.Prefs.SaveIdentifier("123")

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- rt.watch(ctx, inR, outW) }()

	lines := make(chan string, 8)
	go func() {
		scanner := bufio.NewScanner(outR)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	next := func() string {
		select {
		case l := <-lines:
			return l
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for output line")
			return ""
		}
	}

	if l := next(); !strings.HasPrefix(l, `{"type":"update"`) {
		t.Fatalf("first line = %q, want update", l)
	}

	if _, err := io.WriteString(inW, `{"command":"changeDiscordId"}`+"\n"); err != nil {
		t.Fatalf("write intent: %v", err)
	}
	if l := next(); l != `{"type":"showConfig"}` {
		t.Fatalf("line = %q, want showConfig", l)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("watch did not return after cancel")
	}
	_ = inW.Close()
	_ = outW.Close()
}

func TestLogs_PrintsTail(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	logPath := filepath.Join(dir, "np.log")
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte(fmt.Sprintf("log_file = %q\n", logPath)), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var buf bytes.Buffer
	if err := Logs(Options{ConfigPath: cfgPath}, 10, &buf); err != nil {
		t.Fatalf("Logs returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "no log entries") {
		t.Fatalf("Logs output = %q, want empty notice", buf.String())
	}

	entries := `{"level":"info","message":"first"}` + "\n" + `{"level":"info","message":"second"}` + "\n"
	if err := os.WriteFile(logPath, []byte(entries), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	buf.Reset()
	if err := Logs(Options{ConfigPath: cfgPath}, 1, &buf); err != nil {
		t.Fatalf("Logs returned error: %v", err)
	}
	if strings.Contains(buf.String(), "first") || !strings.Contains(buf.String(), "second") {
		t.Fatalf("Logs output = %q, want only the last entry", buf.String())
	}
}
