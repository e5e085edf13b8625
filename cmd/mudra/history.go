package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// printHistory writes the n newest journal events followed by the
// successful command totals.
func printHistory(w io.Writer, s *store.Store, n int) error {
	events, err := s.Events().Recent(n)
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	counts, err := s.Events().CountByCommand()
	if err != nil {
		return fmt.Errorf("count commands: %w", err)
	}

	if len(events) == 0 {
		fmt.Fprintln(w, "no journaled events")
	}
	for _, e := range events {
		at := e.CreatedAt.Local().Format(time.DateTime)
		switch e.Kind {
		case store.EventModeSwitch:
			fmt.Fprintf(w, "%s  mode     %s\n", at, e.Mode)
		case store.EventCommand:
			label := gesture.Command(e.Command).Label()
			if e.OK {
				fmt.Fprintf(w, "%s  command  %s\n", at, label)
			} else {
				fmt.Fprintf(w, "%s  command  %s failed: %s\n", at, label, e.Error)
			}
		}
	}

	if len(counts) == 0 {
		return nil
	}
	cmds := make([]string, 0, len(counts))
	for cmd := range counts {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)

	fmt.Fprintln(w)
	for _, cmd := range cmds {
		fmt.Fprintf(w, "%-12s %d\n", gesture.Command(cmd).Label(), counts[cmd])
	}
	return nil
}
