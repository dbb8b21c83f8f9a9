// Matefish is a UCI-speaking forced-mate solving engine: it consumes
// positions and search limits over stdio and emits a proof line
// reaching checkmate within the requested distance, or a failure
// signal. See internal/protocol for the command loop.
package main

import (
	"os"

	"github.com/jkorten/matefish/internal/logx"
	"github.com/jkorten/matefish/internal/protocol"
)

func main() {
	log := logx.New()
	session := protocol.NewSession(os.Stdout, log)
	session.Run(os.Stdin)
}
