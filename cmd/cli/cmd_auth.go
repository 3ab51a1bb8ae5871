package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ArthurB95/linklink/pkg/core/services"
	"github.com/spf13/cobra"
)

var loginTokenFlag string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Log in and out of Link.Link",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google",
	Long: `Opens the Google sign-in flow in your browser and captures the issued
token on a local callback. If the browser flow is not available, pass the
token directly with --token.`,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE:  runAuthLogout,
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE:  runAuthWhoami,
}

func init() {
	authLoginCmd.Flags().StringVar(&loginTokenFlag, "token", "", "paste a token instead of using the browser flow")
	authCmd.AddCommand(authLoginCmd, authLogoutCmd, authWhoamiCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	token := loginTokenFlag
	if token == "" {
		token, err = captureTokenFromBrowser(cmd.Context(), a.cfg.APIBaseURL)
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()
	if err := a.session.Login(ctx, token); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user, err := a.session.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("token stored but account lookup failed: %w", err)
	}
	fmt.Printf("Logged in as %s (@%s)\n", user.Name, user.Username)
	return nil
}

// captureTokenFromBrowser runs the loopback leg of the OAuth flow: the
// backend hands the token back through a redirect, which we catch on a
// local listener.
func captureTokenFromBrowser(ctx context.Context, apiBaseURL string) (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:8976")
	if err != nil {
		return "", fmt.Errorf("start callback listener: %w", err)
	}

	type result struct {
		token string
		err   error
	}
	done := make(chan result, 1)

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			if msg := query.Get("error"); msg != "" {
				fmt.Fprint(w, "Sign-in failed. You can close this tab.")
				done <- result{err: errors.New(msg)}
				return
			}
			token := query.Get("token")
			if token == "" {
				http.Error(w, "missing token", http.StatusBadRequest)
				return
			}
			fmt.Fprint(w, "Signed in. You can close this tab and return to the terminal.")
			done <- result{token: token}
		}),
	}
	go server.Serve(listener)
	defer server.Close()

	fmt.Println("Open this URL in your browser to sign in:")
	fmt.Printf("\n  %s/oauth2/authorization/google\n\n", apiBaseURL)
	fmt.Println("Waiting for the sign-in to complete...")

	select {
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("sign-in failed: %w", res.err)
		}
		return res.token, nil
	case <-time.After(5 * time.Minute):
		return "", errors.New("timed out waiting for sign-in")
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	if err := a.session.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func runAuthWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	claims, err := a.session.InspectToken(ctx)
	if err != nil {
		if errors.Is(err, services.ErrNotLoggedIn) {
			fmt.Println("Not logged in. Run 'linklink auth login'.")
			return nil
		}
		return err
	}
	if claims.Expired {
		fmt.Printf("Session for %s expired at %s. Run 'linklink auth login'.\n",
			claims.Subject, claims.ExpiresAt.Format(time.RFC822))
		return nil
	}

	user, err := a.session.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("account lookup failed: %w", err)
	}
	fmt.Printf("%s (@%s)\n", user.Name, user.Username)
	fmt.Printf("  email:    %s\n", user.Email)
	fmt.Printf("  provider: %s\n", user.Provider)
	fmt.Printf("  session expires %s\n", claims.ExpiresAt.Format(time.RFC822))
	return nil
}
