// Command hmcli is a CLI client for the Hotel Management auth API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/adijith/HotelManagement/internal/client/api"
	"github.com/adijith/HotelManagement/internal/client/session"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `hmcli
Usage:
  hmcli [-addr URL] <cmd> [args]

Commands:
  version
  register   -u <username> -e <email> -p <password>   (saves session)
  login      -u <username> -p <password>              (saves session)
  logout
  status                                              (local session state)
  whoami                                              (asks the server)
`)
	os.Exit(2)
}

// main dispatches subcommands over a shared guard and API client.
func main() {
	addr := flag.String("addr", "http://localhost:8080", "server base URL")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)

	guard, err := session.NewGuard(session.NewFileStore(session.DefaultDir()))
	if err != nil {
		fail(err)
	}
	client := api.New(*addr, guard)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd {

	case "version":
		fmt.Printf("hmcli %s (%s)\n", version, buildDate)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		u := fs.String("u", "", "username")
		e := fs.String("e", "", "email")
		p := fs.String("p", "", "password")
		_ = fs.Parse(flag.Args()[1:])
		if *u == "" || *e == "" || *p == "" {
			fmt.Fprintln(os.Stderr, "need -u, -e and -p")
			os.Exit(1)
		}
		sess, err := client.Register(ctx, *u, *e, *p)
		if err != nil {
			fail(err)
		}
		if err := guard.SetAuthenticated(sess); err != nil {
			fail(err)
		}
		fmt.Printf("registered and logged in as %s until %s\n",
			sess.User.Username, sess.ExpiresAt.Local().Format(time.RFC1123))

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		u := fs.String("u", "", "username")
		p := fs.String("p", "", "password")
		_ = fs.Parse(flag.Args()[1:])
		if *u == "" || *p == "" {
			fmt.Fprintln(os.Stderr, "need -u and -p")
			os.Exit(1)
		}
		sess, err := client.Login(ctx, *u, *p)
		if err != nil {
			fail(err)
		}
		if err := guard.SetAuthenticated(sess); err != nil {
			fail(err)
		}
		fmt.Printf("logged in as %s until %s\n",
			sess.User.Username, sess.ExpiresAt.Local().Format(time.RFC1123))

	case "logout":
		if err := guard.Logout(); err != nil {
			fail(err)
		}
		fmt.Println("logged out")

	case "status":
		d := guard.Check("status")
		if !d.Allowed {
			fmt.Println(d.State)
			os.Exit(1)
		}
		user, _ := guard.Current()
		fmt.Printf("%s (%s %s)\n", d.State, user.Username, user.Email)

	case "whoami":
		// guard first: an expired session is cleared locally without a
		// doomed network call
		if d := guard.Check("whoami"); !d.Allowed {
			fmt.Fprintf(os.Stderr, "not logged in (%s); retry %q after login\n", d.State, d.Destination)
			os.Exit(1)
		}
		id, err := client.Me(ctx)
		if err != nil {
			var apiErr *api.APIError
			if errors.As(err, &apiErr) && apiErr.Status == 401 {
				// server rejected the token; drop the local session too
				_ = guard.Logout()
			}
			fail(err)
		}
		fmt.Printf("%s <%s> (id %d)\n", id.Username, id.Email, id.UserID)

	default:
		usage()
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
