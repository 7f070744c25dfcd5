package main

import (
	"bytes"
	"testing"
)

func TestRootCommandStructure(t *testing.T) {
	root := newRootCmd()

	if root.Use != "ovhctl" {
		t.Errorf("Use = %q, want \"ovhctl\"", root.Use)
	}
	if !root.SilenceUsage || !root.SilenceErrors {
		t.Error("usage and error output must be silenced in favor of main's own reporting")
	}

	want := map[string]bool{
		"list":   false,
		"create": false,
		"delete": false,
		"dns":    false,
	}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestGlobalFlagDefaults(t *testing.T) {
	root := newRootCmd()

	configFlag := root.PersistentFlags().Lookup("config")
	if configFlag == nil {
		t.Fatal("missing --config flag")
	}
	if configFlag.DefValue != "ovh.conf" {
		t.Errorf("--config default = %q, want \"ovh.conf\"", configFlag.DefValue)
	}
	if configFlag.Shorthand != "c" {
		t.Errorf("--config shorthand = %q, want \"c\"", configFlag.Shorthand)
	}

	debugFlag := root.PersistentFlags().Lookup("debug")
	if debugFlag == nil {
		t.Fatal("missing --debug flag")
	}
	if debugFlag.DefValue != "false" {
		t.Errorf("--debug default = %q, want \"false\"", debugFlag.DefValue)
	}

	metricsFlag := root.PersistentFlags().Lookup("metrics-addr")
	if metricsFlag == nil {
		t.Fatal("missing --metrics-addr flag")
	}
	if metricsFlag.DefValue != "" {
		t.Errorf("--metrics-addr default = %q, want \"\"", metricsFlag.DefValue)
	}
}

func TestDNSCommandStructure(t *testing.T) {
	root := newRootCmd()

	dnsCmd, _, err := root.Find([]string{"dns"})
	if err != nil || dnsCmd.Name() != "dns" {
		t.Fatal("dns subcommand not registered")
	}

	want := map[string]bool{"list": false, "create": false, "delete": false, "refresh": false}
	for _, c := range dnsCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("dns subcommand %q not registered", name)
		}
	}
}

func TestWrongArgCountFails(t *testing.T) {
	tests := [][]string{
		{"list"},
		{"create", "example.com", "from@example.com"},
		{"delete", "example.com"},
		{"dns", "list"},
		{"dns", "create", "example.com", "A"},
		{"dns", "delete", "example.com"},
		{"dns", "refresh"},
	}

	for _, args := range tests {
		root := newRootCmd()
		root.SetArgs(args)
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		if err := root.Execute(); err == nil {
			t.Errorf("args %v: expected argument error", args)
		}
	}
}
