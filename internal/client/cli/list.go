package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kalajat/archive/internal/models"
	"github.com/kalajat/archive/internal/view"
)

const snapshotTimeout = 10 * time.Second

// snapshot subscribes just long enough to catch the initial state push.
func (a *App) snapshot(ctx context.Context) ([]models.Entry, error) {
	ctx, cancelCtx := context.WithTimeout(ctx, snapshotTimeout)
	defer cancelCtx()

	ch := make(chan []models.Entry, 1)
	cancel, err := a.store.Subscribe(ctx, func(entries []models.Entry) {
		select {
		case ch <- entries:
		default:
		}
	})
	if err != nil {
		return nil, err
	}
	defer cancel()

	select {
	case entries := <-ch:
		return entries, nil
	case <-ctx.Done():
		return nil, errors.New("timed out waiting for entries")
	}
}

func printEntries(entries []models.Entry) {
	if len(entries) == 0 {
		fmt.Println("(no entries)")
		return
	}
	for _, item := range entries {
		name := item.VictimName
		if name == "" {
			name = view.UnknownVictim
		}
		ts := time.UnixMilli(item.Timestamp).Format("2006-01-02 15:04")
		fmt.Printf("[%s] %s  %s (%s): %s\n", item.ID, ts, name, item.Category, item.Content)
		if item.Analysis != "" {
			fmt.Printf("    %s\n", item.Analysis)
		}
	}
}

// List prints the feed, optionally narrowed by a search term and a category
// taken from the command arguments.
func (a *App) List(ctx context.Context, args []string) error {
	entries, err := a.snapshot(ctx)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	category := models.CategoryAll
	term := ""
	for _, arg := range args {
		switch arg {
		case "slip", "joke":
			category = models.Category(arg)
		default:
			term = arg
		}
	}

	entries = view.FilterByCategory(entries, category)
	entries = view.Filter(entries, term)
	printEntries(entries)
	return nil
}

// Stats prints the victims leaderboard.
func (a *App) Stats(ctx context.Context) error {
	entries, err := a.snapshot(ctx)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	stats := view.Leaderboard(entries)
	if len(stats) == 0 {
		fmt.Println("(no slips recorded yet)")
		return nil
	}
	for i, s := range stats {
		fmt.Printf("%d. %s: %d\n", i+1, s.Name, s.Count)
	}
	return nil
}
