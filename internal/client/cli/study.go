package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// Decks lists the user's decks. An unavailable list shows as empty.
func (a *App) Decks(ctx context.Context) error {
	decks := a.studyService.Decks(ctx)
	if len(decks) == 0 {
		fmt.Fprintln(a.out, "No decks")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCARDS\tDUE")
	for _, d := range decks {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", d.ID, d.Title, d.CardCount, d.DueCount)
	}
	return tw.Flush()
}

// Streak prints the study streak.
func (a *App) Streak(ctx context.Context) error {
	s := a.studyService.Streak(ctx)
	fmt.Fprintf(a.out, "Current streak: %d day(s), longest: %d", s.Current, s.Longest)
	if s.Stage != "" {
		fmt.Fprintf(a.out, ", stage: %s", s.Stage)
	}
	fmt.Fprintln(a.out)
	return nil
}
