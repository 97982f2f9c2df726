package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dmitrijs2005/receiptkeeper/internal/client/client"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	sessionState() session.State
	// revalidate re-checks the session after the API refused its token and
	// reports whether the session ended.
	revalidate(ctx context.Context) bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	ChangePassword(ctx context.Context, args []string) error

	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	AddProduct(ctx context.Context, args []string) error
	EditProduct(ctx context.Context, args []string) error
	DeleteProduct(ctx context.Context, args []string) error
	Products(ctx context.Context, args []string) error
	Scan(ctx context.Context, args []string) error
	Daily(ctx context.Context, args []string) error
	Monthly(ctx context.Context, args []string) error
}

type handler struct {
	run       func(execIface, context.Context, []string) error
	protected bool
	usage     string
}

var handlers = map[string]handler{
	"register": {run: execIface.Register, usage: "register"},
	"login":    {run: execIface.Login, usage: "login"},
	"logout":   {run: execIface.Logout},

	"whoami":      {run: execIface.WhoAmI, protected: true, usage: "whoami"},
	"rename":      {run: execIface.Rename, protected: true, usage: "rename [username]"},
	"passwd":      {run: execIface.ChangePassword, protected: true, usage: "passwd"},
	"list":        {run: execIface.List, protected: true, usage: "list"},
	"l":           {run: execIface.List, protected: true},
	"show":        {run: execIface.Show, protected: true, usage: "show <id>"},
	"add":         {run: execIface.Add, protected: true, usage: "add"},
	"edit":        {run: execIface.Edit, protected: true, usage: "edit <id>"},
	"delete":      {run: execIface.Delete, protected: true, usage: "delete <id>"},
	"addproduct":  {run: execIface.AddProduct, protected: true, usage: "addproduct <transaction id>"},
	"editproduct": {run: execIface.EditProduct, protected: true, usage: "editproduct <transaction id> <product id>"},
	"delproduct":  {run: execIface.DeleteProduct, protected: true, usage: "delproduct <product id>"},
	"products":    {run: execIface.Products, protected: true, usage: "products"},
	"scan":        {run: execIface.Scan, protected: true, usage: "scan <image file>"},
	"daily":       {run: execIface.Daily, protected: true, usage: "daily [YYYY-MM]"},
	"monthly":     {run: execIface.Monthly, protected: true, usage: "monthly [YYYY]"},
}

func helpText(st session.State) string {
	var names []string
	for _, h := range handlers {
		if h.usage == "" || h.protected != st.Authenticated() {
			continue
		}
		names = append(names, h.usage)
	}
	if st.Authenticated() {
		names = append(names, "logout")
	}
	sort.Strings(names)
	return "Available commands: " + strings.Join(append(names, "help", "exit"), ", ")
}

// runREPL reads commands from reader and dispatches them to a until input
// ends, the user types "exit" or "quit", or ctx is done.
//
// Protected commands are refused while the session is loading or anonymous.
// Handler errors are printed and the loop continues, except
// client.ErrConfiguration, which is returned. A refused token makes the
// session revalidate itself.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		printlnFn(fmt.Sprintf("rk %s> ", statusFn()))

		line, err := readLine(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "exit", "quit":
			printlnFn("Bye!")
			return nil
		case "help":
			printlnFn(helpText(a.sessionState()))
			continue
		}

		h, ok := handlers[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}

		if h.protected {
			switch session.Gate(a.sessionState()) {
			case session.DecisionWait:
				printlnFn("Session is still loading, try again.")
				continue
			case session.DecisionRedirectLogin:
				printlnFn("Please log in first.")
				continue
			}
		}

		if err := h.run(a, ctx, args); err != nil {
			switch {
			case errors.Is(err, client.ErrConfiguration):
				return err
			case errors.Is(err, client.ErrUnauthorized) && a.sessionState().Authenticated():
				if a.revalidate(ctx) {
					printlnFn("Session expired, please log in again.")
					continue
				}
			case errors.Is(err, client.ErrNotFound):
				printlnFn("Not found:", err)
				continue
			}
			printlnFn("Error:", err)
		}
	}
}
