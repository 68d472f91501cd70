package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slidelink/internal/config"
	"github.com/vovakirdan/slidelink/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the slidelink SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own board. Sessions are recorded in the
server's database with origin ssh:<user>.

Host key handling:
  - --host-key, else server.host_key from the config
  - the key is generated on first start when missing

Examples:
  slidelink serve                      # Listen on the configured address
  slidelink serve --addr :2222         # Listen on port 2222
  slidelink serve --level 02-stacks    # Start every session on one level

Users can connect with:
  ssh -t localhost -p 2323`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "addr", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	env, err := a.env(nil)
	if err != nil {
		fail("%v", err)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = firstNonEmpty(flagSSHAddr, a.cfg.Server.Addr, cfg.Address)
	cfg.HostKeyPath = config.ExpandHome(firstNonEmpty(flagHostKey, a.cfg.Server.HostKey, cfg.HostKeyPath))
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Session = a.runtime()

	server, err := tui.NewSSHServer(cfg, env)
	if err != nil {
		a.close()
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting slidelink SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		a.close()
		fail("server: %v", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
