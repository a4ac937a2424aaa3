package cmd

import "testing"

func TestConfigFlagRegistered(t *testing.T) {
	f := RootCmd.PersistentFlags().Lookup("config")
	if f == nil {
		t.Fatal("expected a --config flag on the root command")
	}
	if f.DefValue != "" {
		t.Error("expected the config file to default to the home directory lookup, got", f.DefValue)
	}
}
