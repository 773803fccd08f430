package qoi

import "github.com/rs/zerolog"

// logger is nil by default: the codec never touches zerolog on the hot
// path unless a caller opts in with SetLogger.
var logger *zerolog.Logger

// SetLogger installs a package-wide debug logger. Passing nil (the
// default) disables all logging. When set, the encoder and decoder emit
// one Debug event per finished image with opcode-class counts — never
// per-pixel — so enabling it does not turn a codec call into a firehose.
func SetLogger(l *zerolog.Logger) {
	logger = l
}

// opcodeCounts tallies how many times each opcode class was emitted or
// consumed during a single encode/decode call, for the summary debug log.
type opcodeCounts struct {
	rgb, rgba, index, diff, luma, run int
}

func (c opcodeCounts) logEvent(op string, header Header) {
	if logger == nil {
		return
	}
	logger.Debug().
		Str("op", op).
		Uint32("width", header.Width).
		Uint32("height", header.Height).
		Int("op_rgb", c.rgb).
		Int("op_rgba", c.rgba).
		Int("op_index", c.index).
		Int("op_diff", c.diff).
		Int("op_luma", c.luma).
		Int("op_run", c.run).
		Msg("qoi opcode summary")
}
