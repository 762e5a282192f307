package tui

// history remembers lines typed at the command prompt so Up/Down can
// recall them. Consecutive duplicates are stored once and the oldest line
// is dropped past limit.
type history struct {
	lines  []string
	limit  int
	cursor int // len(lines) when not browsing
}

func newHistory(limit int) *history {
	return &history{lines: make([]string, 0, limit), limit: limit}
}

func (h *history) push(line string) {
	if n := len(h.lines); n == 0 || h.lines[n-1] != line {
		h.lines = append(h.lines, line)
		if len(h.lines) > h.limit {
			h.lines = h.lines[1:]
		}
	}
	h.cursor = len(h.lines)
}

// older steps back and stops at the oldest line.
func (h *history) older() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.lines[h.cursor], true
}

// newer steps forward; past the newest line it reports false so the caller
// can clear the prompt.
func (h *history) newer() (string, bool) {
	if h.cursor >= len(h.lines) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.lines) {
		return "", false
	}
	return h.lines[h.cursor], true
}

func (h *history) reset() {
	h.cursor = len(h.lines)
}
