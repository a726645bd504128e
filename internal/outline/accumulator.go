package outline

// Heading is a classified heading line waiting to be merged into an entry.
type Heading struct {
	Level Level
	Text  string
	Page  int
	Size  float64
	Font  string
	Bold  bool
}

func (h Heading) sameRun(o Heading) bool {
	return h.Level == o.Level && h.Page == o.Page && h.Size == o.Size &&
		h.Font == o.Font && h.Bold == o.Bold
}

func (h Heading) entry() Entry {
	return Entry{Level: h.Level, Text: h.Text, Page: h.Page}
}

// Accumulator merges consecutive heading lines of the same run into a single
// outline entry. The zero value is empty and ready to use. One accumulator
// spans a whole document and must see headings in document order.
type Accumulator struct {
	pending *Heading
}

// Observe feeds the next heading. When h starts a new run, the previous
// pending heading is returned as a finalized entry.
func (a *Accumulator) Observe(h Heading) (Entry, bool) {
	if a.pending == nil {
		a.pending = &h
		return Entry{}, false
	}
	if a.pending.sameRun(h) {
		a.pending.Text += " " + h.Text
		return Entry{}, false
	}
	done := a.pending.entry()
	a.pending = &h
	return done, true
}

// Flush finalizes the pending heading, if any, and empties the accumulator.
func (a *Accumulator) Flush() (Entry, bool) {
	if a.pending == nil {
		return Entry{}, false
	}
	done := a.pending.entry()
	a.pending = nil
	return done, true
}
