package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ArthurB95/linklink/pkg/core/domain"
	"github.com/spf13/cobra"
)

var (
	linkTitleFlag  string
	linkURLFlag    string
	linkActiveFlag string
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Manage the links on your bio page",
}

var linksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your bio page links",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLoadedBio(cmd, func(ctx context.Context, a *app) error {
			printLinks(a.bio.Links())
			return nil
		})
	},
}

var linksAddCmd = &cobra.Command{
	Use:   "add <title> <url>",
	Short: "Add a link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLoadedBio(cmd, func(ctx context.Context, a *app) error {
			_, err := a.bio.AddLink(ctx, args[0], args[1])
			return err
		})
	},
}

var linksRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withLoadedBio(cmd, func(ctx context.Context, a *app) error {
			return a.bio.RemoveLink(ctx, id)
		})
	},
}

var linksEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a link's title, URL or active state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		patch := domain.BioLinkPatch{}
		if cmd.Flags().Changed("title") {
			patch.Title = &linkTitleFlag
		}
		if cmd.Flags().Changed("url") {
			patch.URL = &linkURLFlag
		}
		if cmd.Flags().Changed("active") {
			active := linkActiveFlag == "true"
			patch.IsActive = &active
		}
		if patch == (domain.BioLinkPatch{}) {
			return fmt.Errorf("nothing to update: pass at least one of --title, --url, --active")
		}

		return withLoadedBio(cmd, func(ctx context.Context, a *app) error {
			return a.bio.EditLink(ctx, id, patch)
		})
	},
}

var linksUpCmd = &cobra.Command{
	Use:   "up <id>",
	Short: "Move a link one position up",
	Args:  cobra.ExactArgs(1),
	RunE:  moveLinkCmd(true),
}

var linksDownCmd = &cobra.Command{
	Use:   "down <id>",
	Short: "Move a link one position down",
	Args:  cobra.ExactArgs(1),
	RunE:  moveLinkCmd(false),
}

func init() {
	linksEditCmd.Flags().StringVar(&linkTitleFlag, "title", "", "new title")
	linksEditCmd.Flags().StringVar(&linkURLFlag, "url", "", "new URL")
	linksEditCmd.Flags().StringVar(&linkActiveFlag, "active", "", "true or false")
	linksCmd.AddCommand(linksListCmd, linksAddCmd, linksRmCmd, linksEditCmd, linksUpCmd, linksDownCmd)
	rootCmd.AddCommand(linksCmd)
}

func moveLinkCmd(up bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withLoadedBio(cmd, func(ctx context.Context, a *app) error {
			return a.bio.MoveLink(ctx, id, up)
		})
	}
}

// withLoadedBio bootstraps the app, loads the bio page and runs fn against
// it. Every links subcommand needs the current list before mutating it.
func withLoadedBio(cmd *cobra.Command, fn func(context.Context, *app) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	if err := a.bio.Load(ctx); err != nil {
		return err
	}
	return fn(ctx, a)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
