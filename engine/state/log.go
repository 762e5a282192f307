package state

// LogCapacity is the maximum number of entries kept in the game log.
const LogCapacity = 50

// Log is a bounded message log. Once full, the oldest entry is evicted.
type Log struct {
	entries []string
	max     int
}

// NewLog creates an empty log holding up to LogCapacity entries.
func NewLog() *Log {
	return &Log{
		entries: make([]string, 0, LogCapacity),
		max:     LogCapacity,
	}
}

// Append adds a message, evicting the oldest if over capacity.
func (l *Log) Append(msg string) {
	l.entries = append(l.entries, msg)
	if len(l.entries) > l.max {
		l.entries = l.entries[1:]
	}
}

// Len returns the number of entries currently held.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of all entries, oldest first.
func (l *Log) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Tail returns up to the last n entries, oldest first.
func (l *Log) Tail(n int) []string {
	if n > len(l.entries) {
		n = len(l.entries)
	}
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}
