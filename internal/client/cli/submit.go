package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/kalajat/archive/internal/models"
)

// Submit walks the user through recording a new entry. Slips and jokes get
// an AI annotation when the analyzer is configured; without it the entry is
// stored without one.
func (a *App) Submit(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Victim name (empty for unknown)", os.Stdout)
	if err != nil {
		return err
	}

	content, err := getSimpleText(a.reader, "What did they say?", os.Stdout)
	if err != nil {
		return err
	}

	categoryText, err := getSimpleText(a.reader, "Category: (s)lip or (j)oke", os.Stdout)
	if err != nil {
		return err
	}

	category := models.CategorySlip
	switch categoryText {
	case "j", "joke":
		category = models.CategoryJoke
	case "", "s", "slip":
		category = models.CategorySlip
	default:
		fmt.Println("Unknown category:", categoryText)
		return nil
	}

	draft := models.Entry{
		VictimName: name,
		Content:    content,
		Category:   category,
	}
	if a.user != nil {
		draft.UserID = a.user.UID
		draft.UserName = a.user.DisplayName
		draft.UserEmail = a.user.Email
		draft.UserPhoto = a.user.PhotoURL
	}

	// Slips always get an annotation; jokes only when the admin configured
	// a joke prompt.
	if category == models.CategorySlip || a.appCfg.JokePrompt != "" {
		draft.Analysis = a.analyzer.Analyze(ctx, name, content, category, a.promptOverride(category))
	}

	if _, err := a.store.Create(ctx, draft); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Println(a.appCfg.SuccessMessage)
	if draft.Analysis != "" {
		fmt.Println(draft.Analysis)
	}
	return nil
}

func (a *App) promptOverride(category models.Category) string {
	if category == models.CategoryJoke {
		return a.appCfg.JokePrompt
	}
	return a.appCfg.SlipPrompt
}
