package log_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/emucore/dosmouse/internal/log"
	"github.com/emucore/dosmouse/machine"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.LevelTrace, log.ParseLevel("trace"))
	assert.Equal(t, slog.LevelDebug, log.ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, log.ParseLevel(""))
	assert.Equal(t, slog.LevelError, log.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, log.ParseLevel("bogus"))
}

func TestCallTracerFormatsRegisters(t *testing.T) {
	var sb strings.Builder
	tr := log.NewCallTracer(&sb)

	r := &machine.Regs{AX: 0x0003, BX: 0x0001, CX: 0x0140, DX: 0x0060}
	tr.Trace(true, 0x0003, r)
	tr.Trace(false, 0x0003, r)

	out := sb.String()
	assert.Contains(t, out, "call int33 fn=0003")
	assert.Contains(t, out, "ret  int33 fn=0003")
	assert.Contains(t, out, "cx=0140")
}

func TestCallTracerNilWriter(t *testing.T) {
	tr := log.NewCallTracer(nil)
	tr.Trace(true, 0x0003, &machine.Regs{})
}
