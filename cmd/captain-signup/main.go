package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gantabya/internal/config"
	"gantabya/internal/signup"
)

// terminalNavigator reports the route it was sent to and then signals done.
type terminalNavigator struct {
	done chan string
}

func (n terminalNavigator) Navigate(route string) {
	n.done <- route
}

func main() {
	config.LoadDotEnv()
	cfg := config.LoadSignup()

	state := signup.NewCaptainState()
	navigator := terminalNavigator{done: make(chan string, 1)}

	page := signup.NewPage(signup.Deps{
		Registrar:     signup.NewClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout}),
		Tokens:        signup.NewFileTokenStore(cfg.TokenFile),
		Captains:      state,
		Notifier:      signup.WriterNotifier{W: os.Stdout},
		Navigator:     navigator,
		RedirectDelay: cfg.RedirectDelay,
	})

	form := page.Form()
	flag.Func("firstname", "captain first name", setter(form.SetFirstName))
	flag.Func("lastname", "captain last name", setter(form.SetLastName))
	flag.Func("email", "captain email", setter(form.SetEmail))
	var passwordSet bool
	flag.Func("password", "account password (read from stdin when omitted)", func(v string) error {
		passwordSet = true
		form.SetPassword(v)
		return nil
	})
	flag.Func("color", "vehicle color", setter(form.SetVehicleColor))
	flag.Func("plate", "vehicle plate", setter(form.SetVehiclePlate))
	flag.Func("capacity", "vehicle capacity", setter(form.SetVehicleCapacity))
	flag.Func("type", "vehicle type (car, motorcycle, auto)", setter(form.SetVehicleType))
	flag.Parse()

	if !passwordSet {
		fmt.Fprint(os.Stderr, "Password: ")
		password, err := readPassword(os.Stdin)
		if err != nil {
			log.Fatalf("failed to read password: %v", err)
		}
		form.SetPassword(password)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Registering captain at %s%s", cfg.BaseURL, signup.RegisterPath)
	if err := page.Submit(ctx); err != nil {
		printErrors(form.Errors())
		os.Exit(1)
	}

	if captain, ok := state.Captain(); ok {
		fmt.Printf("Registered captain %s (%s %s), status %s\n",
			captain.ID, captain.FullName.FirstName, captain.FullName.LastName, captain.Status)
	}

	select {
	case route := <-navigator.done:
		fmt.Printf("Continue at %s\n", route)
	case <-ctx.Done():
	}
}

func setter(set func(string)) func(string) error {
	return func(v string) error {
		set(v)
		return nil
	}
}

// readPassword returns the first line of r without its line ending.
// Empty input yields an empty password, which the server rejects.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printErrors(errs signup.FormErrors) {
	if errs.Message != "" {
		fmt.Fprintf(os.Stderr, "  %s\n", errs.Message)
	}
	for field, msg := range errs.Fields {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
	}
}
