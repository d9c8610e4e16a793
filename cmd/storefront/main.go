package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/diyabansal-1605/full-stack-project/internal/config"
	"github.com/diyabansal-1605/full-stack-project/internal/logger"
)

const usage = `usage: storefront [-config=<path>] [-stub-pay] <command> [<args>]

Configuration flags:

   -config     Path to a yaml config file. STOREFRONT_CONFIG is used if the flag is not set.
               Environment variables and a .env file override values from the file.

   -stub-pay   Let the payment prompt accept 'pay' and sign the payment with the stub
               backend's secret. Development only.

Account commands
   login <email>                     Log in, prompting for the password
   signup <name> <email> <phone>     Create an account, prompting for the password
   logout                            Forget the stored session
   whoami                            Show the logged in user
   profile                           Show the profile fields
   profile-set <field> <value>       Change name, email or phoneNumber

Catalog commands
   categories                        List categories and their subcategories
   products <category> [<sub>]       List the products of a category
   product <id>                      Show a product with its reviews
   search <query>                    Search all products by name
   add <productId> [<qty>]           Add a product to the cart (1 to 10)
   review <productId> <text>         Review a product

Cart and checkout commands
   cart                              Show the cart
   qty <productId> <n>               Set the quantity of a cart line
   rm <productId>                    Remove a cart line
   address                           Show the delivery address
   address-set <name> <phone> <address> <city> <state> <pincode>
                                     Save the delivery address
   checkout                          Pay for the cart
   orders                            List past orders

Other commands
   repl                              Run an interactive shell
   help                              Display this message
`

var (
	configFlag  = flag.String("config", "", "path to a yaml config file")
	stubPayFlag = flag.Bool("stub-pay", false, "sign payments with the stub backend secret")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "missing command\n\n")
		fmt.Print(usage)
		os.Exit(2)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		logger.L().WithError(err).Fatal("failed to load config")
	}
	logger.Setup(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, os.Stdin, os.Stdout, *stubPayFlag)
	if err != nil {
		logger.L().WithError(err).Fatal("failed to start")
	}
	defer a.Close()

	cmd := args[0]
	if cmd == "repl" {
		err = a.repl(ctx)
	} else {
		err = a.run(ctx, cmd, args[1:])
	}
	if err != nil {
		a.Close()
		if isShown(err) {
			os.Exit(1)
		}
		logger.L().Fatalf("%s error: %v", cmd, err)
	}
}
