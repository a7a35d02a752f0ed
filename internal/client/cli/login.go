package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/kalajat/archive/internal/client/kv"
	"github.com/kalajat/archive/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login establishes the guest identity for this session. The chosen display
// name sticks across sessions via the guest slot; in remote mode each login
// also fetches a fresh access token from the server.
func (a *App) Login(ctx context.Context) error {
	saved, err := a.loadGuestIdentity(ctx)
	if err != nil {
		return err
	}

	name := ""
	if saved != nil {
		name = saved.DisplayName
	}
	if name == "" {
		name, err = getSimpleText(a.reader, "Enter display name (empty for guest)", os.Stdout)
		if err != nil {
			return err
		}
	}

	if a.Mode == ModeRemote {
		user, err := a.remote.Authenticate(ctx, name)
		if err != nil {
			log.Printf("login failed: %s", err.Error())
			return err
		}
		a.user = user
	} else {
		if saved == nil {
			if name == "" {
				name = "ضيف"
			}
			saved = &models.Identity{UID: uuid.NewString(), DisplayName: name}
		}
		a.user = saved
	}

	if err := a.saveGuestIdentity(ctx, *a.user); err != nil {
		log.Printf("warning: could not persist identity: %s", err.Error())
	}

	fmt.Printf("مرحباً %s!\n", a.user.DisplayName)
	return nil
}

func (a *App) loadGuestIdentity(ctx context.Context) (*models.Identity, error) {
	raw, ok, err := a.slots.Get(ctx, kv.SlotGuestUser)
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var user models.Identity
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return &user, nil
}

func (a *App) saveGuestIdentity(ctx context.Context, user models.Identity) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return a.slots.Set(ctx, kv.SlotGuestUser, string(data))
}
