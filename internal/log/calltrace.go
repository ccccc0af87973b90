package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/emucore/dosmouse/machine"
)

// CallTracer handles raw interrupt call traces with optional file output.
type CallTracer interface {
	Trace(entry bool, fn uint16, r *machine.Regs)
}

// callTracer implements CallTracer with thread-safe output.
type callTracer struct {
	w  io.Writer
	mu sync.Mutex
}

// NewCallTracer creates a new CallTracer. If writer is nil, returns a no-op tracer.
func NewCallTracer(w io.Writer) CallTracer {
	return &callTracer{w: w}
}

// Trace emits a single-line register dump with timestamp. entry=true means
// the registers on entry to the handler, entry=false the registers on return.
func (c *callTracer) Trace(entry bool, fn uint16, r *machine.Regs) {
	if c.w == nil {
		return
	}

	dir := "ret "
	if entry {
		dir = "call"
	}

	line := fmt.Sprintf("%s %s int33 fn=%04x ax=%04x bx=%04x cx=%04x dx=%04x si=%04x di=%04x es=%04x\n",
		time.Now().Format("2006/01/02 15:04:05"),
		dir,
		fn,
		r.AX, r.BX, r.CX, r.DX, r.SI, r.DI, r.ES)

	c.mu.Lock()
	_, _ = c.w.Write([]byte(line))
	c.mu.Unlock()
}
