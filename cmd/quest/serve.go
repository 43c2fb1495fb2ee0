package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/steamvn/tui-quest/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an SSH server exposing the games",
	Long: `Start an SSH server that serves the game menu to connecting clients.

Anyone who can reach the address can play over plain ssh:

  ssh -p 23234 localhost

Each session gets its own menu and game state; scores from all sessions
land in the shared database.`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "address to listen on")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "path to SSH host key (default ~/.quest/host_key)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "disconnect idle sessions after this many minutes")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting SSH server: %v\n", err)
		os.Exit(1)
	}

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
