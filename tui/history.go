package tui

// recall is a bounded list of submitted commands with Up/Down navigation.
type recall struct {
	entries []string
	max     int
	cursor  int // -1 when not navigating
}

func newRecall(max int) *recall {
	return &recall{
		entries: make([]string, 0, max),
		max:     max,
		cursor:  -1,
	}
}

// push records a command. Consecutive duplicates and combat action numbers
// are skipped; only the exploration commands are worth recalling.
func (r *recall) push(cmd string) {
	if isActionNumber(cmd) {
		return
	}
	if len(r.entries) > 0 && r.entries[len(r.entries)-1] == cmd {
		return
	}
	r.entries = append(r.entries, cmd)
	if len(r.entries) > r.max {
		r.entries = r.entries[1:]
	}
}

// prev steps to the next older entry, stopping at the oldest.
func (r *recall) prev() (string, bool) {
	if len(r.entries) == 0 {
		return "", false
	}
	if r.cursor == -1 {
		r.cursor = len(r.entries) - 1
	} else if r.cursor > 0 {
		r.cursor--
	}
	return r.entries[r.cursor], true
}

// next steps to the next newer entry. Stepping past the newest returns
// ("", false) and leaves navigation.
func (r *recall) next() (string, bool) {
	if r.cursor == -1 {
		return "", false
	}
	r.cursor++
	if r.cursor >= len(r.entries) {
		r.cursor = -1
		return "", false
	}
	return r.entries[r.cursor], true
}

func (r *recall) reset() {
	r.cursor = -1
}

func isActionNumber(s string) bool {
	if s == "" || len(s) > 2 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
