package logs

import (
	"io"
	"os"

	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
}

// Writer receives the text log output.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}
