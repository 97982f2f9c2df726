package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	idStyle     = lipgloss.NewStyle().Width(6).Align(lipgloss.Right).PaddingRight(1)
	dateStyle   = lipgloss.NewStyle().Width(18)
	amountStyle = lipgloss.NewStyle().Width(12).Align(lipgloss.Right).PaddingRight(1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

func parseID(args []string, i int, what string) (int64, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("missing %s", what)
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, args[i])
	}
	return id, nil
}

func displayDate(s string) string {
	ts, err := models.ParseDate(s)
	if err != nil {
		return s
	}
	return ts.Format("2006-01-02 15:04")
}

func (a *App) List(ctx context.Context, _ []string) error {
	txs, err := a.transactions.List(ctx)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Fprintln(a.out, mutedStyle.Render("No transactions yet. Use 'add' or 'scan'."))
		return nil
	}

	fmt.Fprintln(a.out, headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		idStyle.Render("ID"), dateStyle.Render("Date"), amountStyle.Render("Total"), "Description")))
	for _, tx := range txs {
		fmt.Fprintln(a.out, lipgloss.JoinHorizontal(lipgloss.Top,
			idStyle.Render(strconv.FormatInt(tx.ID, 10)),
			dateStyle.Render(displayDate(tx.Date)),
			amountStyle.Render(tx.TotalAmount.String()),
			tx.Description,
		))
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, 0, "transaction id")
	if err != nil {
		return err
	}
	tx, err := a.transactions.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printTransaction(tx)
	return nil
}

func (a *App) printTransaction(tx *models.Transaction) {
	fmt.Fprintln(a.out, headerStyle.Render(fmt.Sprintf("Transaction %d", tx.ID)))
	fmt.Fprintf(a.out, "Date:        %s\n", displayDate(tx.Date))
	fmt.Fprintf(a.out, "Total:       %s\n", tx.TotalAmount)
	fmt.Fprintf(a.out, "Description: %s\n", tx.Description)
	if len(tx.Products) == 0 {
		fmt.Fprintln(a.out, mutedStyle.Render("No products."))
		return
	}
	fmt.Fprintln(a.out, "Products:")
	for _, p := range tx.Products {
		fmt.Fprintln(a.out, lipgloss.JoinHorizontal(lipgloss.Top,
			idStyle.Render(strconv.FormatInt(p.ID, 10)),
			amountStyle.Render(p.Price.String()),
			p.Name,
		))
	}
}

// Add creates an empty transaction; the date defaults to now.
func (a *App) Add(ctx context.Context, _ []string) error {
	date, err := GetTextWithDefault(a.reader, "Date (YYYY-MM-DD HH:MM)", models.FormatDate(a.now()), a.out)
	if err != nil {
		return err
	}
	desc, err := getSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	tx, err := a.transactions.Create(ctx, date, desc)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created transaction %d.\n", tx.ID)
	return nil
}

// Edit prompts for each field with the current value as default.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args, 0, "transaction id")
	if err != nil {
		return err
	}
	tx, err := a.transactions.Get(ctx, id)
	if err != nil {
		return err
	}

	date, err := GetTextWithDefault(a.reader, "Date", displayDate(tx.Date), a.out)
	if err != nil {
		return err
	}
	total, err := GetTextWithDefault(a.reader, "Total", tx.TotalAmount.String(), a.out)
	if err != nil {
		return err
	}
	desc, err := GetTextWithDefault(a.reader, "Description", tx.Description, a.out)
	if err != nil {
		return err
	}

	if err := a.transactions.Update(ctx, id, date, total, desc); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated transaction %d.\n", id)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args, 0, "transaction id")
	if err != nil {
		return err
	}
	ok, err := a.confirm(fmt.Sprintf("Delete transaction %d?", id))
	if err != nil || !ok {
		return err
	}
	if err := a.transactions.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted transaction %d.\n", id)
	return nil
}

func (a *App) AddProduct(ctx context.Context, args []string) error {
	txID, err := parseID(args, 0, "transaction id")
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Product name", a.out)
	if err != nil {
		return err
	}
	price, err := getSimpleText(a.reader, "Price", a.out)
	if err != nil {
		return err
	}

	p, err := a.transactions.AddProduct(ctx, txID, name, price)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added product %d.\n", p.ID)
	return nil
}

func (a *App) EditProduct(ctx context.Context, args []string) error {
	txID, err := parseID(args, 0, "transaction id")
	if err != nil {
		return err
	}
	productID, err := parseID(args, 1, "product id")
	if err != nil {
		return err
	}
	tx, err := a.transactions.Get(ctx, txID)
	if err != nil {
		return err
	}
	var current *models.Product
	for i := range tx.Products {
		if tx.Products[i].ID == productID {
			current = &tx.Products[i]
		}
	}
	if current == nil {
		return fmt.Errorf("product %d not found in transaction %d", productID, txID)
	}

	name, err := GetTextWithDefault(a.reader, "Product name", current.Name, a.out)
	if err != nil {
		return err
	}
	price, err := GetTextWithDefault(a.reader, "Price", current.Price.String(), a.out)
	if err != nil {
		return err
	}

	if err := a.transactions.UpdateProduct(ctx, txID, productID, name, price); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated product %d.\n", productID)
	return nil
}

func (a *App) DeleteProduct(ctx context.Context, args []string) error {
	id, err := parseID(args, 0, "product id")
	if err != nil {
		return err
	}
	if err := a.transactions.DeleteProduct(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted product %d.\n", id)
	return nil
}

func (a *App) Products(ctx context.Context, _ []string) error {
	ps, err := a.transactions.Products(ctx)
	if err != nil {
		return err
	}
	if len(ps) == 0 {
		fmt.Fprintln(a.out, mutedStyle.Render("No products yet."))
		return nil
	}

	fmt.Fprintln(a.out, headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		idStyle.Render("ID"), amountStyle.Render("Price"), "Name")))
	for _, p := range ps {
		fmt.Fprintln(a.out, lipgloss.JoinHorizontal(lipgloss.Top,
			idStyle.Render(strconv.FormatInt(p.ID, 10)),
			amountStyle.Render(p.Price.String()),
			p.Name,
			mutedStyle.Render(fmt.Sprintf("  in transaction %d", p.Transaction)),
		))
	}
	return nil
}

func (a *App) confirm(question string) (bool, error) {
	answer, err := getSimpleText(a.reader, question+" (y/N)", a.out)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	fmt.Fprintln(a.out, "Canceled.")
	return false, nil
}
