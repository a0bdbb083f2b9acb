// Command adduser registers an account from the command line. The password
// is prompted for without echo when stdin is a terminal and read as one line
// otherwise.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"expensetracker/internal/config"
	"expensetracker/internal/database"
	"expensetracker/internal/logger"
	"expensetracker/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("failed to load config: %v", err)
	}
	store, closeStore, err := database.OpenStore(cfg)
	if err != nil {
		logger.Get().Fatalf("failed to open store: %v", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Get().Warnf("store close error: %v", err)
		}
	}()

	factory := services.NewFactory(store)
	if err := run(context.Background(), os.Args[1:], factory, os.Stdin, os.Stdout); err != nil {
		logger.Get().Errorf("adduser: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, factory *services.Factory, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stdout)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "login email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" {
		return errors.New("usage: adduser -name NAME -email EMAIL")
	}

	password, err := readPassword(stdin, stdout)
	if err != nil {
		return err
	}

	user, err := factory.Auth().Register(ctx, *name, *email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Created user %s (%s)\n", user.Email, user.ID)
	return nil
}

func readPassword(stdin io.Reader, stdout io.Writer) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(stdout, "Password: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(stdout)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
