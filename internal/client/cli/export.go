package cli

import (
	"context"
	"fmt"
)

// Export asks the server to upload the current snapshot to object storage.
// Only meaningful in remote mode; local archives are already plain files.
func (a *App) Export(ctx context.Context) error {
	if a.Mode != ModeRemote {
		fmt.Println("Export needs a configured server.")
		return nil
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}

	key, err := a.remote.Export(ctx)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	fmt.Println("Exported to", key)
	return nil
}
