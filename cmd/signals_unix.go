//go:build unix

package cmd

import (
	"os"
	"syscall"

	"github.com/xvierd/pomotray/internal/adapters/headless"
)

// controlSignals maps the signals the headless timer accepts to commands.
var controlSignals = map[os.Signal]headless.Command{
	syscall.SIGUSR1: headless.CmdToggle,
	syscall.SIGUSR2: headless.CmdReset,
}
