package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const pingTimeout = 3 * time.Second

func newLoginCommand(r *runner) *cobra.Command {
	var (
		email         string
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when empty)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin instead of the terminal")
	cmd.RunE = r.run(func(ctx context.Context, a *App, _ []string) error {
		return a.login(ctx, email, passwordStdin)
	})
	return cmd
}

func (a *App) login(ctx context.Context, email string, passwordStdin bool) error {
	var err error
	if strings.TrimSpace(email) == "" {
		if email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
			return fmt.Errorf("read email: %w", err)
		}
	}

	var password string
	if passwordStdin {
		password, err = a.reader.ReadString('\n')
		password = strings.TrimRight(password, "\r\n")
		if password == "" && err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	} else if password, err = GetPassword(a.out); err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	if err := a.authService.Login(ctx, email, password); err != nil {
		return &commandError{action: "Login failed", err: err, login: true}
	}
	a.log.Info(ctx, "logged in", "user", a.authService.Username())
	printSuccess(a.out, "Logged in as "+a.authService.Username())
	return nil
}

func newLogoutCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			if err := a.authService.Logout(ctx); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			printSuccess(a.out, "Logged out")
			return nil
		}),
	}
}

func newStatusCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session and whether the server is reachable",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			a.status(ctx)
			return nil
		}),
	}
}

func (a *App) status(ctx context.Context) {
	fmt.Fprintf(a.out, "API:     %s\n", a.api.BaseURL())

	if a.authService.IsAuthenticated() {
		user := a.authService.Username()
		if user == "" {
			user = "(unknown user)"
		}
		fmt.Fprintf(a.out, "User:    %s\n", user)
		if exp := a.authService.ExpiresAt(); !exp.IsZero() {
			state := "expires"
			if exp.Before(time.Now()) {
				state = "expired"
			}
			fmt.Fprintf(a.out, "Session: %s %s\n", state, exp.Local().Format("2006-01-02 15:04:05"))
		}
	} else {
		fmt.Fprintln(a.out, "User:    not logged in")
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := a.authService.Ping(ctx); err != nil {
		a.log.Warn(ctx, "server unreachable", "error", err)
		fmt.Fprintln(a.out, "Server:  offline")
		return
	}
	fmt.Fprintln(a.out, "Server:  online")
}
