package hybridsim

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Logger accumulates verbose-mode optimizer lines and flushes them to
// Output. It is a deliberately rudimentary line logger, matching the
// teacher's ad-hoc approach rather than a structured logging package: no
// repo in the retrieved pack reaches for one for this kind of numeric CLI
// tool.
type Logger struct {
	Output io.Writer
	buff   strings.Builder
}

// Logf appends a formatted line to the logger's buffer.
func (log *Logger) Logf(format string, a ...interface{}) {
	log.buff.WriteString(fmt.Sprintf(format, a...))
}

func (log *Logger) flush() {
	if log.Output == nil {
		log.Output = os.Stdout
	}
	log.Output.Write([]byte(log.buff.String()))
	log.buff.Reset()
}
