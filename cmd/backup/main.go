// Command backup exports or imports one user's data as a JSON document, the
// same document the settings page downloads and uploads.
//
//	backup export -email asha@example.com [-out file.json]
//	backup import -email asha@example.com -in file.json
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"expensetracker/internal/config"
	"expensetracker/internal/database"
	"expensetracker/internal/logger"
	"expensetracker/internal/services"
	"expensetracker/internal/session"
)

const usage = "usage: backup <export|import> -email EMAIL [-out FILE | -in FILE]"

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

	if err := run(context.Background(), os.Args[1:], services.NewFactory(store), os.Stdout); err != nil {
		logger.Get().Errorf("backup: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, factory *services.Factory, stdout io.Writer) error {
	if len(args) < 1 {
		return errors.New(usage)
	}

	fs := flag.NewFlagSet("backup "+args[0], flag.ContinueOnError)
	fs.SetOutput(stdout)
	email := fs.String("email", "", "account to back up or restore")
	out := fs.String("out", "", "export destination, defaults to the dated backup name")
	in := fs.String("in", "", "backup file to import")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if *email == "" {
		return errors.New(usage)
	}

	user, err := factory.Auth().GetUserByEmail(ctx, *email)
	if err != nil {
		return err
	}
	settings, err := factory.Settings(session.FromUser(*user))
	if err != nil {
		return err
	}

	switch args[0] {
	case "export":
		path, err := export(ctx, settings, *out)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Exported %s to %s\n", user.Email, path)

	case "import":
		if *in == "" {
			return errors.New(usage)
		}
		data, err := os.ReadFile(*in)
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}
		if err := settings.ImportErr(ctx, data); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Imported %s into %s\n", filepath.Base(*in), user.Email)

	default:
		return fmt.Errorf("unknown command: %s (use export or import)", args[0])
	}
	return nil
}

func export(ctx context.Context, settings services.SettingsServicer, out string) (string, error) {
	var buf bytes.Buffer
	filename, err := settings.ExportJSON(ctx, &buf)
	if err != nil {
		return "", err
	}
	if out == "" {
		out = filename
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return out, nil
}
