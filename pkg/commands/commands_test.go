package commands

import (
	"bytes"
	"encoding/json"
	"net"
	"strconv"
	"strings"
	"testing"

	"tableflip.dev/mindease/pkg/entry"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/runner/mcp"
	"tableflip.dev/mindease/pkg/store"
)

// cli runs commands against one in-memory journal shared across calls.
func cli(t *testing.T) func(args ...string) (string, error) {
	t.Helper()
	t.Setenv("MINDEASE_PATH", t.TempDir())
	t.Setenv("MINDEASE_LOG_DIR", t.TempDir())

	mem := store.NewMemory()
	old := persistenceFor
	persistenceFor = func(store.Config) (store.Persistence, error) { return mem, nil }
	t.Cleanup(func() { persistenceFor = old })

	return func(args ...string) (string, error) {
		var out bytes.Buffer
		root := New()
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(args)
		err := root.Execute()
		return out.String(), err
	}
}

func decodeEntry(t *testing.T, s string) entry.Entry {
	t.Helper()
	var e entry.Entry
	if err := json.Unmarshal([]byte(s), &e); err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return e
}

func TestAddListStats(t *testing.T) {
	run := cli(t)

	out, err := run("add", "slept", "well", "--mood", "happy", "--json")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	e := decodeEntry(t, out)
	if e.Text != "slept well" || e.Mood != mood.Happy || e.ID == 0 {
		t.Fatalf("unexpected entry %+v", e)
	}
	if _, err := run("add", "long day"); err != nil {
		t.Fatalf("add without mood: %v", err)
	}

	out, err = run("get", "--json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var list []entry.Entry
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 2 || list[0].Text != "long day" {
		t.Fatalf("expected newest first, got %+v", list)
	}

	out, err = run("get", "happy", "--json")
	if err != nil {
		t.Fatalf("get happy: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != e.ID {
		t.Fatalf("mood filter returned %+v", list)
	}

	out, err = run("stats", "--json")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var report struct {
		Window  string `json:"window"`
		Entries int    `json:"entries"`
		Insight string `json:"insight"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if report.Window != "all" || report.Entries != 2 || report.Insight != "Entries: 2 • Average mood: 5" {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestAddBlankFails(t *testing.T) {
	run := cli(t)
	if _, err := run("add", "   "); err == nil {
		t.Fatal("expected an error for blank text")
	}
}

func TestGetMoodTwice(t *testing.T) {
	run := cli(t)
	if _, err := run("get", "sad", "--mood", "happy"); err == nil {
		t.Fatal("expected an error when the mood is given twice")
	}
}

func TestEditKeepsID(t *testing.T) {
	run := cli(t)
	out, err := run("add", "first draft", "--mood", "sad", "--json")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	e := decodeEntry(t, out)
	id := strconv.FormatInt(e.ID, 10)

	if _, err := run("edit", id, "second", "thought"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	out, err = run("show", id, "--json")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	got := decodeEntry(t, out)
	if got.ID != e.ID || got.Created != e.Created || got.Text != "second thought" || got.Mood != mood.Sad {
		t.Fatalf("edit changed more than the text: %+v -> %+v", e, got)
	}

	if _, err := run("delete", id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	out, err = run("show", id, "--json")
	if err != nil {
		t.Fatalf("json errors are reported on stdout, got %v", err)
	}
	var jerr map[string]string
	if err := json.Unmarshal([]byte(out), &jerr); err != nil || jerr["error"] == "" {
		t.Fatalf("expected a JSON error, got %q", out)
	}
}

func TestClearWithYes(t *testing.T) {
	run := cli(t)
	for _, text := range []string{"a", "b"} {
		if _, err := run("add", text); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	out, err := run("clear", "--yes")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !strings.Contains(out, "All entries deleted.") {
		t.Fatalf("unexpected output %q", out)
	}
	out, _ = run("get", "--json")
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("journal not empty: %q", out)
	}
}

func TestDraftAndTheme(t *testing.T) {
	run := cli(t)
	if _, err := run("draft", "set", "half", "a", "thought"); err != nil {
		t.Fatalf("draft set: %v", err)
	}
	out, err := run("draft")
	if err != nil {
		t.Fatalf("draft show: %v", err)
	}
	if strings.TrimSpace(out) != "half a thought" {
		t.Fatalf("draft = %q", out)
	}
	if _, err := run("draft", "clear", "extra"); err == nil {
		t.Fatal("clear with text should fail")
	}

	out, _ = run("theme")
	if strings.TrimSpace(out) != "auto" {
		t.Fatalf("default theme = %q", out)
	}
	if _, err := run("theme", "dark"); err != nil {
		t.Fatalf("theme dark: %v", err)
	}
	out, _ = run("theme")
	if strings.TrimSpace(out) != "dark" {
		t.Fatalf("theme = %q", out)
	}
	if _, err := run("theme", "purple"); err == nil {
		t.Fatal("expected an error for an unknown theme")
	}
}

func TestSurveyAnswersFromFlags(t *testing.T) {
	run := cli(t)
	out, err := run("survey", "--answer", "q1=2,q2=2,q3=2,q4=2,q5=2", "--json")
	if err != nil {
		t.Fatalf("survey: %v", err)
	}
	if !strings.Contains(out, `"score": 10`) {
		t.Fatalf("unexpected survey output %q", out)
	}
}

func TestChatOneShot(t *testing.T) {
	run := cli(t)
	out, err := run("chat", "hi", "there")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(out, "Hello! How are you feeling today?") {
		t.Fatalf("unexpected reply %q", out)
	}
}

func TestPlayUnknownGame(t *testing.T) {
	run := cli(t)
	if _, err := run("play", "chess"); err == nil || !strings.Contains(err.Error(), "unknown game") {
		t.Fatalf("expected an unknown game error, got %v", err)
	}
}

func TestMenuCommands(t *testing.T) {
	root := New()
	names := map[string]bool{}
	for _, c := range menuCommands(root) {
		names[c.Name()] = true
	}
	for _, want := range []string{"add", "get", "stats", "ui", "meditate", "play"} {
		if !names[want] {
			t.Errorf("menu is missing %q", want)
		}
	}
	for _, skip := range []string{"show", "edit", "delete", "help", "completion"} {
		if names[skip] {
			t.Errorf("menu should not offer %q", skip)
		}
	}
}

func TestMCPOptions(t *testing.T) {
	r, err := (&MCPOptions{Transport: "http", Host: "0.0.0.0", Port: 9000, Path: "tools"}).runner()
	if err != nil {
		t.Fatalf("runner: %v", err)
	}
	if r.Transport != mcp.TransportHTTP || r.HTTPListenAddr != "0.0.0.0:9000" || r.HTTPEndpointPath != "/tools" {
		t.Fatalf("unexpected runner %+v", r)
	}

	if _, err := (&MCPOptions{Transport: "carrier-pigeon"}).runner(); err == nil {
		t.Fatal("expected an error for an unknown transport")
	}
	if _, err := (&MCPOptions{Port: 70000}).runner(); err == nil {
		t.Fatal("expected an error for a bad port")
	}
	if _, err := (&MCPOptions{TLSCert: "cert.pem"}).runner(); err == nil {
		t.Fatal("expected an error for a cert without a key")
	}
	r, err = (&MCPOptions{Transport: "STDIO"}).runner()
	if err != nil || r.Transport != mcp.TransportStdio {
		t.Fatalf("stdio runner: %+v %v", r, err)
	}
}

func TestListenURL(t *testing.T) {
	tests := []struct {
		addr net.Addr
		host string
		tls  bool
		want string
	}{{
		addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080},
		host: "127.0.0.1",
		want: "http://127.0.0.1:8080/mcp",
	}, {
		addr: &net.TCPAddr{IP: net.IPv4zero, Port: 4000},
		host: "0.0.0.0",
		tls:  true,
		want: "https://127.0.0.1:4000/mcp",
	}, {
		addr: &net.TCPAddr{IP: net.IPv6loopback, Port: 5000},
		host: "::",
		want: "http://[::1]:5000/mcp",
	}}
	for _, tt := range tests {
		if got := listenURL(tt.addr, tt.host, "/mcp", tt.tls); got != tt.want {
			t.Errorf("listenURL(%v, %q) = %q, want %q", tt.addr, tt.host, got, tt.want)
		}
	}
}
