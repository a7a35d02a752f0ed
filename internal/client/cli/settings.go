package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/kalajat/archive/internal/client/appconfig"
	"github.com/kalajat/archive/internal/common"
)

// Settings edits the admin-tunable application settings: display name,
// success message, the two analysis prompts and the admin password itself.
// The first run bootstraps the admin password; afterwards every visit is
// gated.
func (a *App) Settings(ctx context.Context) error {
	if a.appCfg.AdminPasswordHash == "" {
		fmt.Println("First run: set the admin password.")
		if err := a.setAdminPassword(); err != nil {
			return err
		}
		if err := appconfig.Save(ctx, a.slots, a.appCfg); err != nil {
			return err
		}
	} else if err := a.requireAdmin(); err != nil {
		return err
	}

	field, err := getSimpleText(a.reader,
		"What to change? appname | message | slipprompt | jokeprompt | adminpass (empty to show current)", os.Stdout)
	if err != nil {
		return err
	}

	switch field {
	case "":
		fmt.Println("App name:", a.appCfg.AppName)
		fmt.Println("Success message:", a.appCfg.SuccessMessage)
		fmt.Println("Slip prompt:", orDefault(a.appCfg.SlipPrompt))
		fmt.Println("Joke prompt:", orDefault(a.appCfg.JokePrompt))
		return nil
	case "adminpass":
		if err := a.setAdminPassword(); err != nil {
			return err
		}
	case "appname", "message", "slipprompt", "jokeprompt":
		value, err := getSimpleText(a.reader, "New value", os.Stdout)
		if err != nil {
			return err
		}
		switch field {
		case "appname":
			a.appCfg.AppName = value
		case "message":
			a.appCfg.SuccessMessage = value
		case "slipprompt":
			a.appCfg.SlipPrompt = value
		case "jokeprompt":
			a.appCfg.JokePrompt = value
		}
	default:
		fmt.Println("Unknown setting:", field)
		return nil
	}

	if err := appconfig.Save(ctx, a.slots, a.appCfg); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	fmt.Println("Saved.")
	return nil
}

func (a *App) setAdminPassword() error {
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if len(password) == 0 {
		fmt.Println("Empty password, nothing changed.")
		return nil
	}
	return appconfig.SetAdminPassword(&a.appCfg, password)
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}
