package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrompt_TrimsInput(t *testing.T) {
	var out bytes.Buffer
	got, err := prompt(strings.NewReader("  123  \n"), &out, "ID: ")
	if err != nil {
		t.Fatalf("prompt returned error: %v", err)
	}
	if got != "123" {
		t.Fatalf("prompt = %q, want %q", got, "123")
	}
	if out.String() != "ID: " {
		t.Fatalf("prompt wrote %q, want label", out.String())
	}
}

func TestPrompt_EOFWithoutNewline(t *testing.T) {
	got, err := prompt(strings.NewReader("456"), &bytes.Buffer{}, "")
	if err != nil {
		t.Fatalf("prompt returned error: %v", err)
	}
	if got != "456" {
		t.Fatalf("prompt = %q, want %q", got, "456")
	}
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"configure", "reset", "status", "watch", "logs"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("Find(%q) = %v, %v; want the subcommand", name, cmd, err)
		}
	}
	for _, flag := range []string{"config", "prefs", "poll"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Fatalf("missing persistent flag --%s", flag)
		}
	}
}

func TestConfigureCmd_EmptyPromptIsNoop(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader("\n"))
	root.SetOut(&out)
	root.SetArgs([]string{"configure", "--config", t.TempDir() + "/missing.toml"})

	if err := root.Execute(); err != nil {
		t.Fatalf("configure returned error: %v", err)
	}
	if strings.Contains(out.String(), "validated") {
		t.Fatalf("configure output = %q, want no validation", out.String())
	}
}
