package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/kalajat/archive/internal/client/appconfig"
	"github.com/kalajat/archive/internal/common"
)

// requireAdmin prompts for the admin password and checks it against the
// stored hash. Deleting and reconfiguring are admin actions; without a hash
// set there is no way in except the settings bootstrap.
func (a *App) requireAdmin() error {
	if a.appCfg.AdminPasswordHash == "" {
		fmt.Println("No admin password set. Use 'settings' to set one first.")
		return common.ErrorUnauthorized
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := appconfig.CheckAdminPassword(a.appCfg, password); err != nil {
		fmt.Println("Wrong password.")
		return err
	}
	return nil
}

// Delete removes an entry by id after the admin gate.
func (a *App) Delete(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Enter entry id to delete", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if id == "" {
		return nil
	}

	if err := a.store.Delete(ctx, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Println("Deleted.")
	return nil
}
