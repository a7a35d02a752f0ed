package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if a.user != nil && a.user.DisplayName != "" {
		s = a.user.DisplayName + " "
	}
	s = s + string(a.Mode)
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {

	log.Printf("Welcome to %s (type 'help' for commands)\n", a.appCfg.AppName)
	scanner := bufio.NewScanner(os.Stdin)

	if err := a.Login(ctx); err != nil {
		log.Printf("login error: %v", err)
	}

	for {
		fmt.Printf("kalajat %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: login, submit, (l)ist [slip|joke] [term], watch, stats, delete, settings, export, exit")

		case "login":
			_ = a.Login(ctx)
		case "submit", "add":
			_ = a.Submit(ctx)
		case "l", "list":
			_ = a.List(ctx, args)
		case "watch":
			_ = a.Watch(ctx)
		case "stats":
			_ = a.Stats(ctx)
		case "delete":
			_ = a.Delete(ctx)
		case "settings":
			_ = a.Settings(ctx)
		case "export":
			_ = a.Export(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
