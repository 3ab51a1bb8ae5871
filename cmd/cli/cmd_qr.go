package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"time"

	"github.com/ArthurB95/linklink/pkg/core/domain"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

var (
	qrSizeFlag   int
	qrFgFlag     string
	qrBgFlag     string
	qrOutputFlag string
)

var qrCmd = &cobra.Command{
	Use:   "qr",
	Short: "Manage your QR codes",
}

var qrListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your QR codes",
	RunE:  runQRList,
}

var qrCreateCmd = &cobra.Command{
	Use:   "create <name> <content>",
	Short: "Create a QR code",
	Long: `Creates a QR code. URL content is routed through the scan tracker so
scans show up in your stats; any other content (phone numbers, plain text)
is encoded as-is.`,
	Args: cobra.ExactArgs(2),
	RunE: runQRCreate,
}

var qrRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a QR code",
	Args:  cobra.ExactArgs(1),
	RunE:  runQRRm,
}

var qrToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Show or hide a QR code on your bio page",
	Long: `Binds the QR code to your bio page, or unbinds it if it is already
shown there. A bio page shows at most one QR code.`,
	Args: cobra.ExactArgs(1),
	RunE: runQRToggle,
}

var qrExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a QR code as a PNG file",
	Args:  cobra.ExactArgs(1),
	RunE:  runQRExport,
}

func init() {
	qrCreateCmd.Flags().IntVar(&qrSizeFlag, "size", 256, "image size in pixels")
	qrCreateCmd.Flags().StringVar(&qrFgFlag, "fg", "#000000", "foreground color")
	qrCreateCmd.Flags().StringVar(&qrBgFlag, "bg", "#ffffff", "background color")
	qrExportCmd.Flags().StringVarP(&qrOutputFlag, "output", "o", "", "output file (default <name>.png)")
	qrCmd.AddCommand(qrListCmd, qrCreateCmd, qrRmCmd, qrToggleCmd, qrExportCmd)
	rootCmd.AddCommand(qrCmd)
}

// withLoadedQR mirrors withLoadedBio for the QR service.
func withLoadedQR(cmd *cobra.Command, fn func(context.Context, *app) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	a.qr.Load(ctx)
	return fn(ctx, a)
}

func runQRList(cmd *cobra.Command, args []string) error {
	return withLoadedQR(cmd, func(ctx context.Context, a *app) error {
		codes := a.qr.Codes()
		if len(codes) == 0 {
			fmt.Println("No QR codes yet.")
			return nil
		}
		for _, code := range codes {
			bound := ""
			if code.ID == a.qr.BoundID() {
				bound = "  (on bio page)"
			}
			fmt.Printf("[%d] %s  %q  %d scans%s\n", code.ID, code.Name, code.Content, code.ScanCount, bound)
		}
		fmt.Printf("\n%d codes, %d scans total\n", len(codes), a.qr.TotalScans())
		return nil
	})
}

func runQRCreate(cmd *cobra.Command, args []string) error {
	return withLoadedQR(cmd, func(ctx context.Context, a *app) error {
		_, err := a.qr.Create(ctx, domain.QRCodeRequest{
			Name:    args[0],
			Content: args[1],
			Size:    qrSizeFlag,
			FgColor: qrFgFlag,
			BgColor: qrBgFlag,
		})
		return err
	})
}

func runQRRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withLoadedQR(cmd, func(ctx context.Context, a *app) error {
		return a.qr.Delete(ctx, id)
	})
}

func runQRToggle(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withLoadedQR(cmd, func(ctx context.Context, a *app) error {
		return a.qr.Toggle(ctx, id)
	})
}

func runQRExport(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withLoadedQR(cmd, func(ctx context.Context, a *app) error {
		var target *domain.QRCode
		for _, code := range a.qr.Codes() {
			if code.ID == id {
				target = &code
				break
			}
		}
		if target == nil {
			return fmt.Errorf("no QR code with id %d", id)
		}

		qc, err := qrcode.New(target.EncodedValue(a.client.BaseURL()), qrcode.High)
		if err != nil {
			return fmt.Errorf("generate QR code: %w", err)
		}
		qc.ForegroundColor = hexColor(target.FgColor, color.Black)
		qc.BackgroundColor = hexColor(target.BgColor, color.White)

		size := target.Size
		if size < 128 {
			size = 256
		}
		png, err := qc.PNG(size)
		if err != nil {
			return fmt.Errorf("encode QR code: %w", err)
		}

		out := qrOutputFlag
		if out == "" {
			out = target.Name + ".png"
		}
		if err := os.WriteFile(out, png, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", out)
		return nil
	})
}

func hexColor(s string, fallback color.Color) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return fallback
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
