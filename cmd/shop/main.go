// shop is a terminal storefront client: browse the catalog, fill a cart,
// place an order.
//
//	shop -api http://localhost:5000 browse
//	shop -api http://localhost:5000 order -items 1:2,3:1 -name "Rahim" \
//	    -email rahim@example.com -phone 01700000000 -address "Dhanmondi, Dhaka"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Arif911659/DhakaCart-03/internal/cart"
	"github.com/Arif911659/DhakaCart-03/internal/client"
)

func main() {
	api := flag.String("api", "http://localhost:5000", "storefront API base URL")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: shop [-api URL] browse | order [flags]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.New(*api)
	var err error
	switch flag.Arg(0) {
	case "browse":
		err = browse(ctx, c)
	case "order":
		err = order(ctx, c, flag.Args()[1:])
	default:
		err = fmt.Errorf("unknown command %q", flag.Arg(0))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "shop:", err)
		os.Exit(1)
	}
}

func browse(ctx context.Context, c *client.Client) error {
	categories, err := c.ListCategories(ctx)
	if err != nil {
		return err
	}
	fmt.Println("categories:", strings.Join(categories, ", "))

	products, source, err := c.ListProducts(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("products (served from %s):\n", source)
	for _, p := range products {
		fmt.Printf("  #%d  %-30s %-12s ৳%s  stock %d\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Stock)
	}
	return nil
}

func order(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	items := fs.String("items", "", "cart lines as id:qty,id:qty")
	name := fs.String("name", "", "customer name")
	email := fs.String("email", "", "customer email")
	phone := fs.String("phone", "", "customer phone")
	address := fs.String("address", "", "delivery address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *items == "" {
		return fmt.Errorf("-items is required")
	}

	ct := cart.New()
	for _, line := range strings.Split(*items, ",") {
		id, qty, err := parseLine(line)
		if err != nil {
			return err
		}
		p, _, err := c.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		ct.Add(p)
		ct.UpdateQuantity(p.ID, qty)
	}

	fmt.Printf("cart: %d lines, %d units, total ৳%s\n", ct.Len(), ct.Units(), ct.TotalAmount().StringFixed(2))

	o, err := c.PlaceOrder(ctx, ct.Checkout(*name, *email, *phone, *address))
	if err != nil {
		return err
	}
	fmt.Printf("order #%d placed, status %s, total ৳%s\n", o.ID, o.Status, o.TotalAmount.StringFixed(2))
	return nil
}

func parseLine(line string) (id int64, qty int, err error) {
	parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
	if id, err = strconv.ParseInt(parts[0], 10, 64); err != nil {
		return 0, 0, fmt.Errorf("bad item %q: %w", line, err)
	}
	qty = 1
	if len(parts) == 2 {
		if qty, err = strconv.Atoi(parts[1]); err != nil {
			return 0, 0, fmt.Errorf("bad item %q: %w", line, err)
		}
	}
	return id, qty, nil
}
