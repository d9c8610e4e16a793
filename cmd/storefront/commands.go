package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/diyabansal-1605/full-stack-project/internal/address"
	"github.com/diyabansal-1605/full-stack-project/internal/auth"
	"github.com/diyabansal-1605/full-stack-project/internal/checkout"
	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/nav"
	"github.com/diyabansal-1605/full-stack-project/internal/notice"
	"github.com/diyabansal-1605/full-stack-project/internal/profile"
)

const addressArgs = "<name> <phone> <address> <city> <state> <pincode>"

type command struct {
	run       func(a *app, ctx context.Context, args []string) error
	args      string
	minArgs   int
	protected bool
}

var commands = map[string]command{
	"login":       {run: (*app).login, args: "<email> [<password>]", minArgs: 1},
	"signup":      {run: (*app).signup, args: "<name> <email> <phone> [<password>]", minArgs: 3},
	"logout":      {run: (*app).logout},
	"whoami":      {run: (*app).whoami},
	"categories":  {run: (*app).categories},
	"products":    {run: (*app).products, args: "<category> [<sub>]", minArgs: 1},
	"product":     {run: (*app).product, args: "<id>", minArgs: 1},
	"search":      {run: (*app).searchProducts, args: "<query>", minArgs: 1},
	"add":         {run: (*app).add, args: "<productId> [<qty>]", minArgs: 1},
	"review":      {run: (*app).review, args: "<productId> <text>", minArgs: 2},
	"cart":        {run: (*app).showCart, protected: true},
	"qty":         {run: (*app).setQuantity, args: "<productId> <n>", minArgs: 2, protected: true},
	"rm":          {run: (*app).remove, args: "<productId>", minArgs: 1, protected: true},
	"address":     {run: (*app).showAddress, protected: true},
	"address-set": {run: (*app).setAddress, args: addressArgs, minArgs: 6, protected: true},
	"checkout":    {run: (*app).checkout, protected: true},
	"orders":      {run: (*app).showOrders, protected: true},
	"profile":     {run: (*app).showProfile, protected: true},
	"profile-set": {run: (*app).setProfile, args: "<field> <value>", minArgs: 2, protected: true},
	"help":        {run: (*app).help},
}

func commandNames() []string {
	names := make([]string, 0, len(commands)+1)
	for name := range commands {
		names = append(names, name)
	}
	names = append(names, "exit")
	sort.Strings(names)
	return names
}

// shownError marks a failure the user has already been told about.
type shownError struct{ err error }

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return &shownError{err: err}
}

func isShown(err error) bool {
	var s *shownError
	return errors.As(err, &s)
}

var errNotLoggedIn = errors.New("not logged in")

func (a *app) run(ctx context.Context, name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q, try help", name)
	}
	if len(args) < cmd.minArgs {
		return fmt.Errorf("usage: %s %s", name, cmd.args)
	}
	if cmd.protected && !nav.RequireSession(a.sessions.Current(), a.notifier, a.history) {
		return shown(errNotLoggedIn)
	}
	return cmd.run(a, ctx, args)
}

// prompt reads one line, hiding the input when secret is set and the
// terminal supports it.
func (a *app) prompt(p string, secret bool) (string, error) {
	line := a.line
	if line == nil {
		line = liner.NewLiner()
		defer line.Close()
	}
	if secret {
		s, err := line.PasswordPrompt(p)
		if !errors.Is(err, liner.ErrNotTerminalOutput) {
			return s, err
		}
	}
	return line.Prompt(p)
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func rupees(v float64) string {
	return "₹" + strconv.FormatFloat(v, 'f', 2, 64)
}

func (a *app) login(ctx context.Context, args []string) error {
	form := auth.LoginForm{Email: args[0]}
	if len(args) > 1 {
		form.Password = args[1]
	} else {
		pw, err := a.prompt("Password: ", true)
		if err != nil {
			return err
		}
		form.Password = pw
	}
	return shown(a.auth.Login(ctx, form))
}

func (a *app) signup(ctx context.Context, args []string) error {
	form := auth.SignupForm{Name: args[0], Email: args[1], PhoneNumber: args[2]}
	if len(args) > 3 {
		form.Password = args[3]
	} else {
		pw, err := a.prompt("Password: ", true)
		if err != nil {
			return err
		}
		form.Password = pw
	}
	return shown(a.auth.Signup(ctx, form))
}

func (a *app) logout(ctx context.Context, _ []string) error {
	v, err := profile.NewView(a.client, a.sessions, a.notifier, a.history)
	if err != nil {
		// a credential without a readable identity can still be dropped
		return a.sessions.Logout(ctx)
	}
	return v.Logout(ctx)
}

func (a *app) whoami(context.Context, []string) error {
	s := a.sessions.Current()
	if !s.Authenticated() {
		a.printf("Not logged in.\n")
		return nil
	}
	a.printf("%s <%s>\n", s.Identity.Name, s.Identity.Email)
	return nil
}

func (a *app) categories(ctx context.Context, _ []string) error {
	a.history.Navigate(nav.Categories)
	categories, err := a.catalog.Categories(ctx)
	if err != nil {
		notice.Errorf(a.notifier, "Could not load categories.")
		return shown(err)
	}
	for _, c := range categories {
		a.printf("%s\n", c.Name)
		for _, sub := range c.Subcategories {
			a.printf("  - %s\n", sub)
		}
	}
	return nil
}

func (a *app) printProducts(products []domain.Product) {
	if len(products) == 0 {
		a.printf("No products found.\n")
		return
	}
	for _, p := range products {
		a.printf("%-26s %-30s %10s\n", p.ID, p.Name, rupees(p.Price))
	}
}

func (a *app) products(ctx context.Context, args []string) error {
	var sub string
	if len(args) > 1 {
		sub = args[1]
	}
	a.history.Navigate(nav.CategoryProducts(args[0], sub))
	listing, err := a.catalog.CategoryProducts(ctx, args[0], sub)
	if err != nil {
		notice.Errorf(a.notifier, "Could not load products.")
		return shown(err)
	}
	if len(listing.Subcategories) > 0 {
		a.printf("Subcategories: %s\n\n", strings.Join(listing.Subcategories, ", "))
	}
	a.printProducts(listing.Products)
	return nil
}

func (a *app) product(ctx context.Context, args []string) error {
	a.history.Navigate(nav.ProductPage(args[0]))
	detail, err := a.catalog.ProductPage(ctx, args[0])
	if err != nil {
		notice.Errorf(a.notifier, "Product not found.")
		return shown(err)
	}
	p := detail.Product
	a.printf("%s  %s\n%s\n", p.Name, rupees(p.Price), p.Description)
	if len(detail.Reviews) == 0 {
		a.printf("\nNo reviews yet.\n")
		return nil
	}
	a.printf("\nReviews:\n")
	for _, r := range detail.Reviews {
		if r.UserName != "" {
			a.printf("  %s: %s\n", r.UserName, r.Text)
		} else {
			a.printf("  %s\n", r.Text)
		}
	}
	return nil
}

func (a *app) searchProducts(ctx context.Context, args []string) error {
	a.history.Navigate(nav.Search)
	if err := a.search.Load(ctx); err != nil {
		notice.Errorf(a.notifier, "Could not load products.")
		return shown(err)
	}
	a.search.SetQuery(strings.Join(args, " "))
	a.printProducts(a.search.Results())
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	qty := domain.MinQuantity
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || !domain.QuantityInRange(n) {
			notice.Errorf(a.notifier, "Quantity must be between %d and %d.", domain.MinQuantity, domain.MaxQuantity)
			return shown(fmt.Errorf("invalid quantity %q", args[1]))
		}
		qty = n
	}
	p, err := a.client.Product(ctx, args[0])
	if err != nil {
		notice.Errorf(a.notifier, "Product not found.")
		return shown(err)
	}
	return shown(a.catalog.AddToCart(ctx, *p, qty))
}

func (a *app) review(ctx context.Context, args []string) error {
	a.history.Navigate(nav.ProductPage(args[0]))
	return shown(a.catalog.AddReview(ctx, args[0], strings.Join(args[1:], " ")))
}

func (a *app) printCart(lines []domain.CartLine, total float64) {
	for _, l := range lines {
		a.printf("%-26s %-30s %3d x %10s = %10s\n", l.ProductRef, l.Name, l.Quantity, rupees(l.UnitPrice), rupees(l.Subtotal()))
	}
	a.printf("Total: %s\n", rupees(total))
}

func (a *app) showCart(ctx context.Context, _ []string) error {
	a.history.Navigate(nav.Cart)
	if err := a.cart.Load(ctx); err != nil {
		return shown(err)
	}
	if a.cart.IsEmpty() {
		a.printf("Your cart is empty.\n")
		return nil
	}
	a.printCart(a.cart.Lines(), a.cart.Total())
	return nil
}

func (a *app) setQuantity(ctx context.Context, args []string) error {
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("quantity %q is not a number", args[1])
	}
	if err := a.cart.Load(ctx); err != nil {
		return shown(err)
	}
	return shown(a.cart.ChangeQuantity(ctx, args[0], n))
}

func (a *app) remove(ctx context.Context, args []string) error {
	if err := a.cart.Load(ctx); err != nil {
		return shown(err)
	}
	return shown(a.cart.RemoveItem(ctx, args[0]))
}

func (a *app) printAddress(addr *domain.Address) {
	if addr == nil {
		a.printf("No delivery address saved.\n")
		return
	}
	a.printf("%s, %s\n%s\n%s, %s %s\n", addr.Name, addr.Phone, addr.Address, addr.City, addr.State, addr.Pincode)
}

func (a *app) showAddress(ctx context.Context, _ []string) error {
	v := address.NewView(a.client, a.notifier, a.history, nil)
	// an address that cannot be fetched is saved as a new one
	_ = v.Load(ctx)
	a.printAddress(v.Saved())
	return nil
}

func (a *app) setAddress(ctx context.Context, args []string) error {
	v := address.NewView(a.client, a.notifier, a.history, nil)
	// an address that cannot be fetched is saved as a new one
	_ = v.Load(ctx)
	if !v.FormVisible() {
		v.ToggleForm()
	}
	for i, field := range address.Fields {
		if err := v.SetField(field, args[i]); err != nil {
			return err
		}
	}
	if err := v.Submit(ctx); err != nil {
		return shown(err)
	}
	a.printAddress(v.Saved())
	return nil
}

func (a *app) checkout(ctx context.Context, _ []string) error {
	a.history.Navigate(nav.Checkout)
	o := checkout.NewOrchestrator(checkout.Deps{
		Backend:   a.client,
		Sessions:  a.sessions,
		Notifier:  a.notifier,
		Navigator: a.history,
		Widget:    a.widget,
		Publisher: a.publisher,
	}, checkout.Options{
		PaymentKeyID: a.cfg.PaymentKeyID,
		ShopName:     a.cfg.ShopName,
	})

	if err := o.Open(ctx); err != nil {
		return shown(err)
	}
	if !o.SummaryVisible() {
		a.printf("Add a delivery address first: address-set %s\n", addressArgs)
		return nil
	}

	snap := o.Snapshot()
	a.printf("Deliver to:\n")
	a.printAddress(snap.Address)
	a.printf("\n")
	a.printCart(snap.Cart, snap.Total)

	if err := o.Pay(ctx); err != nil {
		return shown(err)
	}
	return nil
}

func (a *app) showOrders(ctx context.Context, _ []string) error {
	a.history.Navigate(nav.Orders)
	if err := a.orders.Load(ctx); err != nil {
		return shown(err)
	}
	if a.orders.IsEmpty() {
		a.printf("You have no orders yet.\n")
		return nil
	}
	for _, o := range a.orders.Orders() {
		a.printf("Order %s  %s\n", o.ID, rupees(o.TotalAmount))
		for _, p := range o.Products {
			a.printf("  %-30s %3d x %10s\n", p.Name, p.Quantity, rupees(p.Price))
		}
	}
	return nil
}

func (a *app) showProfile(context.Context, []string) error {
	a.history.Navigate(nav.Profile)
	v, err := profile.NewView(a.client, a.sessions, a.notifier, a.history)
	if err != nil {
		return err
	}
	id := v.Fields()
	a.printf("name:        %s\nemail:       %s\nphoneNumber: %s\n", id.Name, id.Email, id.PhoneNumber)
	return nil
}

func (a *app) setProfile(ctx context.Context, args []string) error {
	a.history.Navigate(nav.Profile)
	v, err := profile.NewView(a.client, a.sessions, a.notifier, a.history)
	if err != nil {
		return err
	}
	field := args[0]
	if err := v.ToggleEdit(field); err != nil {
		return err
	}
	if err := v.SetField(field, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	return shown(v.Save(ctx))
}

func (a *app) help(context.Context, []string) error {
	a.printf("%s", usage)
	return nil
}
