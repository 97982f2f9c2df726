package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Scan uploads a receipt photo and shows the transaction created from it.
func (a *App) Scan(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: scan <image file>")
	}
	path := strings.Join(args, " ")

	f, err := a.openFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(a.out, "Scanning receipt...")
	id, err := a.scans.Scan(ctx, filepath.Base(path), f)
	if err != nil {
		if id != 0 {
			fmt.Fprintf(a.out, "Transaction %d was created but not all products were saved.\n", id)
		}
		return err
	}

	tx, err := a.transactions.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printTransaction(tx)
	return nil
}
