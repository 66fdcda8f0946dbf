package mapmcp

import (
	"context"
	"os"
	"time"

	"github.com/OpenNHM/AvaScenarioMapper/internal/logging"
)

// WatchParent monitors for parent process death in a background goroutine
// and cancels the server context when the parent PID changes, so stdio
// servers do not linger after their client is gone.
//
// It must NOT read from stdin: the MCP StdioTransport owns stdin
// exclusively, and stealing bytes here would corrupt the JSON-RPC stream.
func WatchParent(ctx context.Context, cancel context.CancelFunc) {
	ppid := os.Getppid()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
				if os.Getppid() != ppid {
					logging.New("mcp").Warn("parent process died, shutting down", "was_pid", ppid)
					cancel()
					return
				}
			}
		}
	}()
}
