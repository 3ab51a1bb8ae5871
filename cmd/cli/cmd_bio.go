package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ArthurB95/linklink/pkg/core/domain"
	"github.com/spf13/cobra"
)

var (
	bioTitleFlag  string
	bioTextFlag   string
	bioAvatarFlag string
	bioThemeFlag  string
	bioPublicFlag string
)

var bioCmd = &cobra.Command{
	Use:   "bio",
	Short: "View and edit your bio page profile",
}

var bioShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your bio page",
	RunE:  runBioShow,
}

var bioSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long: `Updates only the fields you pass. Examples:

  linklink bio set --title "Arthur" --theme dark
  linklink bio set --public false`,
	RunE: runBioSet,
}

func init() {
	bioSetCmd.Flags().StringVar(&bioTitleFlag, "title", "", "display title")
	bioSetCmd.Flags().StringVar(&bioTextFlag, "bio", "", "bio text")
	bioSetCmd.Flags().StringVar(&bioAvatarFlag, "avatar", "", "avatar image URL")
	bioSetCmd.Flags().StringVar(&bioThemeFlag, "theme", "", "theme: gradient, minimal or dark")
	bioSetCmd.Flags().StringVar(&bioPublicFlag, "public", "", "page visibility: true or false")
	bioCmd.AddCommand(bioShowCmd, bioSetCmd)
	rootCmd.AddCommand(bioCmd)
}

func runBioShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()
	if err := a.bio.Load(ctx); err != nil {
		return err
	}

	page := a.bio.Page()
	visibility := "private"
	if page.IsPublic {
		visibility = "public"
	}
	fmt.Printf("%s  [%s, %s]\n", page.Title, domain.NormalizeTheme(page.Theme), visibility)
	if page.Bio != "" {
		fmt.Printf("  %s\n", page.Bio)
	}
	fmt.Printf("  views: %d\n", page.ViewCount)
	if page.CustomQRCode != nil {
		fmt.Printf("  QR code: %s\n", page.CustomQRCode.Name)
	}
	fmt.Println()
	printLinks(a.bio.Links())
	return nil
}

func printLinks(links []domain.BioLink) {
	if len(links) == 0 {
		fmt.Println("No links yet. Add one with 'linklink links add'.")
		return
	}
	for i, link := range links {
		state := ""
		if !link.IsActive {
			state = "  (inactive)"
		}
		fmt.Printf("%2d. [%d] %s  %s%s\n", i+1, link.ID, link.Title, link.URL, state)
	}
}

func runBioSet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	patch := domain.BioPagePatch{}
	if cmd.Flags().Changed("title") {
		patch.Title = &bioTitleFlag
	}
	if cmd.Flags().Changed("bio") {
		patch.Bio = &bioTextFlag
	}
	if cmd.Flags().Changed("avatar") {
		patch.AvatarURL = &bioAvatarFlag
	}
	if cmd.Flags().Changed("theme") {
		theme := string(domain.NormalizeTheme(bioThemeFlag))
		patch.Theme = &theme
	}
	if cmd.Flags().Changed("public") {
		public := bioPublicFlag == "true"
		patch.IsPublic = &public
	}
	if patch == (domain.BioPagePatch{}) {
		return fmt.Errorf("nothing to update: pass at least one of --title, --bio, --avatar, --theme, --public")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()
	if err := a.bio.Load(ctx); err != nil {
		return err
	}
	return a.bio.UpdateProfile(ctx, patch)
}
