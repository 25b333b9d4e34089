package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to metactl (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("metactl (%s)> ", a.config.Project)
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
			fmt.Println("Available commands: get, set, add, remove, find, ls, keygen, exit")
		case "get":
			a.get(ctx, args)
		case "set":
			a.set(ctx, args)
		case "add":
			a.add(ctx, args)
		case "remove":
			a.remove(ctx, args)
		case "find":
			a.find(ctx, args)
		case "ls":
			a.listProjects(ctx)
		case "keygen":
			a.keygen(ctx, args)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Printf("Unknown command: %s\n", cmd)
		}
	}
}
