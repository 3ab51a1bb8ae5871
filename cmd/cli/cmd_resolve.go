package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ArthurB95/linklink/pkg/core/services"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <handle>",
	Short: "Show what a handle points at",
	Long: `Decides whether a handle is a short link or a bio page, the same way
the gateway does: the short-link probe runs first, and anything that is not
a working short code is treated as a profile handle.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	res, err := a.resolver.Resolve(ctx, args[0])
	if err != nil {
		return err
	}

	switch res.Kind {
	case services.ResolvedAsLink:
		fmt.Printf("short link -> %s\n", res.URL)
	default:
		fmt.Printf("bio page -> %s/%s\n", a.cfg.GatewayBaseURL, res.Handle)
	}
	return nil
}
