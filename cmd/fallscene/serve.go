package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fallscene/internal/platform/tui"
	"github.com/vovakirdan/fallscene/internal/scene"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scene preview over SSH",
	Long: `Start an SSH server that plays the composition to every connecting
terminal. A client may name another composition as the SSH command; flags
given to serve apply to it too. Plans are computed once per distinct scene
and shared by all sessions.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.fallscene/host_key

Examples:
  fallscene serve                           # Listen on :23235 with auto-generated key
  fallscene serve --ssh :2222               # Listen on port 2222
  fallscene serve -c scene-model --seed 9   # Serve another composition

Users can connect with:
  ssh localhost -p 23235
  ssh localhost -p 23235 scene-portrait`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := newLogger()
	ls := mustLoadScene(cmd, logger)

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Preview: tui.PreviewOptions{
			Name: ls.Composition.ID,
		},
		Resolve: sessionResolver(cmd, logger, ls),
	}

	server, err := tui.NewSSHServer(ls.Sim, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Serving %s on %s\n", ls.Composition.ID, server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// sessionResolver builds the simulator for an SSH session command. The first
// argument names a composition; the served one is reused as is.
func sessionResolver(cmd *cobra.Command, logger *log.Logger, served *loadedScene) func([]string) (*scene.Simulator, string, error) {
	return func(args []string) (*scene.Simulator, string, error) {
		if len(args) == 0 || args[0] == served.Composition.ID {
			return served.Sim, served.Composition.ID, nil
		}
		ls, err := loadComposition(cmd, args[0], logger)
		if err != nil {
			return nil, "", err
		}
		return ls.Sim, ls.Composition.ID, nil
	}
}
