//go:build !unix

package cmd

import (
	"os"

	"github.com/xvierd/pomotray/internal/adapters/headless"
)

var controlSignals = map[os.Signal]headless.Command{}
