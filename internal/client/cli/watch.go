package cli

import (
	"context"
	"fmt"

	"github.com/kalajat/archive/internal/models"
)

// Watch streams the feed, reprinting the snapshot after every change, until
// the user presses Enter.
func (a *App) Watch(ctx context.Context) error {
	fmt.Println("Watching for changes, press Enter to stop.")

	cancel, err := a.store.Subscribe(ctx, func(entries []models.Entry) {
		fmt.Println("--- snapshot ---")
		printEntries(entries)
	})
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	defer cancel()

	_, _ = a.reader.ReadString('\n')
	return nil
}
