package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-relay/internal/imaging"
	"github.com/mj1618/desktop-relay/internal/output"
	"github.com/mj1618/desktop-relay/internal/platform"
)

// ScreenshotResult is printed when the image is written to a file.
type ScreenshotResult struct {
	OK       bool   `yaml:"ok"        json:"ok"`
	Path     string `yaml:"path"      json:"path"`
	MimeType string `yaml:"mime_type" json:"mimeType"`
	Width    int    `yaml:"width"     json:"width"`
	Height   int    `yaml:"height"    json:"height"`
}

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the screen",
	Long: `Capture the screen through the automation server (or Chrome's viewport when
browser.driver is chromedp).

--annotate draws every element of a window's automation tree onto the image
with its ID, so the IDs for set-value and action can be read off the picture.`,
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
	screenshotCmd.Flags().Int("quality", 80, "JPEG quality 1-100 when the image is re-encoded")
	screenshotCmd.Flags().Float64("scale", 1.0, "Scale factor 0.1-1.0")
	screenshotCmd.Flags().Bool("annotate", false, "Draw element bounds and IDs of a window onto the image")
	addWindowFlags(screenshotCmd)
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("output")
	quality, _ := cmd.Flags().GetInt("quality")
	scale, _ := cmd.Flags().GetFloat64("scale")
	annotate, _ := cmd.Flags().GetBool("annotate")
	title, id := getWindowFlags(cmd)

	if scale < 0.1 || scale > 1 {
		return fmt.Errorf("--scale must be between 0.1 and 1.0, got %v", scale)
	}

	return withSession(cmd.Context(), func(ctx context.Context, p *platform.Provider) error {
		shot, err := p.Screenshotter.Take(ctx)
		if err != nil {
			return err
		}
		if !shot.Success || shot.ImageBase64 == "" {
			return fmt.Errorf("screenshot failed: %s", shot.Message)
		}

		b64, mime := shot.ImageBase64, shot.MimeType
		if annotate || scale < 1 {
			img, err := imaging.Decode(b64)
			if err != nil {
				return err
			}
			if annotate {
				details, err := resolveWindow(ctx, p, title, id)
				if err != nil {
					return err
				}
				img = imaging.Annotate(img, details.Elements(), [4]int{})
			}
			if scale < 1 {
				img = imaging.Scale(img, scale)
			}
			if b64, err = imaging.EncodeJPEG(img, quality); err != nil {
				return err
			}
			mime = "image/jpeg"
		}

		if outPath == "" {
			_, err := fmt.Fprintln(output.Writer, b64)
			return err
		}

		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return fmt.Errorf("decode screenshot: %w", err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return err
		}
		img, err := imaging.Decode(b64)
		if err != nil {
			return err
		}
		return output.Print(ScreenshotResult{
			OK:       true,
			Path:     outPath,
			MimeType: mime,
			Width:    img.Bounds().Dx(),
			Height:   img.Bounds().Dy(),
		})
	})
}
