package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// resetFlags restores the package-level flag values between command runs.
func resetFlags() {
	outputFile = ""
	format = "text"
	catalogFile = ""
	noReport = false
	verbose = false
	mcpTransport = "stdio"
	mcpAddr = ":8080"
	watchEventsAddr = ""

	// cobra keeps --help and --version parsed on the shared command tree.
	resetBuiltinFlags(RootCmd)
	for _, sub := range RootCmd.Commands() {
		resetBuiltinFlags(sub)
	}
}

func resetBuiltinFlags(cmd *cobra.Command) {
	for _, name := range []string{"help", "version"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
	}
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
		resetFlags()
	})

	err := Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
