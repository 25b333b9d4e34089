package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/metastore/internal/client/metadata"
	"github.com/dmitrijs2005/metastore/internal/common"
	"github.com/dmitrijs2005/metastore/internal/keypair"
)

func (a *App) get(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: get <key>")
		return
	}
	value, ok, err := a.store.GetItemValue(ctx, args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !ok {
		fmt.Printf("Key %s not set\n", args[0])
		return
	}
	fmt.Println(value)
}

// set upserts a key. With "-s" instead of an inline value the value is read
// from the terminal without echo.
func (a *App) set(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: set <key> <value> | set <key> -s")
		return
	}
	key, value := args[0], args[1]
	if value == "-s" {
		v, err := GetSecret(a.out(), "Enter value")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		value = v
	}
	if err := a.store.UpsertItem(ctx, key, value); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("OK")
}

func (a *App) add(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: add <key> <value>")
		return
	}
	err := a.store.AddItem(ctx, args[0], args[1])
	if err != nil {
		if errors.Is(err, common.ErrDuplicateKey) {
			fmt.Printf("Key %s already exists (use 'set' to replace it)\n", args[0])
			return
		}
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("OK")
}

func (a *App) remove(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: remove <key>")
		return
	}
	removed, err := a.store.RemoveItem(ctx, args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !removed {
		fmt.Printf("Key %s not set, nothing removed\n", args[0])
		return
	}
	fmt.Println("OK")
}

func (a *App) find(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: find <glob>")
		return
	}
	items, err := a.store.FindItems(ctx, args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for _, item := range items {
		fmt.Printf("%s\t%s\n", item.Key, item.Value)
	}
	fmt.Printf("%d item(s)\n", len(items))
}

func (a *App) listProjects(ctx context.Context) {
	n := 0
	err := a.accessor.EachProject(ctx, 100, func(p metadata.Project) error {
		fmt.Println(p.Name)
		n++
		return nil
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("%d project(s)\n", n)
}

// keygen generates an RSA key pair, stores the OpenSSH public key in the
// metadata document under the given key, and prints the private key once.
// The private key is never sent anywhere.
func (a *App) keygen(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: keygen <key>")
		return
	}
	private, public, err := keypair.Generate()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if err := a.store.UpsertItem(ctx, args[0], public); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Public key stored. Private key (save it now, it is not kept):")
	fmt.Println(private)
}
