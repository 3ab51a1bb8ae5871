package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ArthurB95/linklink/pkg/core/domain"
	"github.com/spf13/cobra"
)

var shortenSlugFlag string

var shortenCmd = &cobra.Command{
	Use:   "shorten <url>",
	Short: "Shorten a URL",
	Long: `Shortens an absolute URL. Pass --slug to pick your own short code;
the slug is lowercased and stripped of anything outside a-z, 0-9 and '-'.

  linklink shorten https://example.com/some/long/path --slug my-link`,
	Args: cobra.ExactArgs(1),
	RunE: runShorten,
}

var shortenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your shortened links",
	RunE:  runShortenList,
}

var shortenRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a shortened link",
	Args:  cobra.ExactArgs(1),
	RunE:  runShortenRm,
}

func init() {
	shortenCmd.Flags().StringVar(&shortenSlugFlag, "slug", "", "custom short code")
	shortenCmd.AddCommand(shortenListCmd, shortenRmCmd)
	rootCmd.AddCommand(shortenCmd)
}

func runShorten(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	link, err := a.shortener.Shorten(ctx, args[0], shortenSlugFlag)
	if err != nil {
		return err
	}
	fmt.Println(domain.FormatShortURL(link.ShortURL, a.cfg.RedirectBaseURL))
	return nil
}

func runShortenList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()
	a.shortener.Load(ctx)

	links := a.shortener.Links()
	if len(links) == 0 {
		fmt.Println("No shortened links yet.")
		return nil
	}
	for _, link := range links {
		fmt.Printf("[%d] %s\n", link.ID, domain.FormatShortURL(link.ShortURL, a.cfg.RedirectBaseURL))
		fmt.Printf("     -> %s  (%d clicks, created %s)\n",
			link.OriginalURL, link.ClickCount, link.CreatedAt.Format("2006-01-02"))
	}
	fmt.Printf("\n%d links, %d clicks total, %d%% click rate\n",
		len(links), a.shortener.TotalClicks(), a.shortener.ClickRate())
	return nil
}

func runShortenRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	a.shortener.Load(ctx)
	return a.shortener.Delete(ctx, id)
}
