package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	var seq int64

	cmd := &cobra.Command{
		Use:   "resolve <input>",
		Short: "Resolve an access code and open a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"input": args[0]}
			if seq != 0 {
				req["seq"] = seq
			}
			var result AccessResult

			if err := client.Post("/api/v1/access", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seq, "seq", 0, "Sequence number echoed back by the server")

	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input>",
		Short: "Check whether an input passes the gate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ValidateResult

			if err := client.Get("/api/v1/access/"+segment(args[0])+"/validate", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPhotoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "photo <input>",
		Short: "Resolve the photo URL for an input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PhotoResult

			if err := client.Get("/api/v1/access/"+segment(args[0])+"/photo", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List known access codes by display name",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CodesResult

			if err := client.Get("/api/v1/codes", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGalleryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gallery <input>",
		Short: "List the gallery images of an access code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GalleryResult

			if err := client.Get("/api/v1/codes/"+segment(args[0])+"/images", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionResult

			if err := client.Get("/api/v1/session", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "end",
		Short: "End the current session and forget its token",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := client.Delete("/api/v1/session")
			var apiErr *APIError
			if err != nil && !(errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized) {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Session ended")
			return nil
		},
	})

	return cmd
}

func newDebugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug <input>",
		Short: "Print the full resolution trace for an input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DebugToken == "" {
				return fmt.Errorf("--debug-token is required")
			}

			var result DebugResult
			if err := client.WithToken(cfg.DebugToken).Get("/api/v1/debug/resolve/"+segment(args[0]), &result); err != nil {
				return err
			}

			if !cfg.Verbose && cfg.Output != "json" {
				result.Attempts = result.significantAttempts()
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.DebugToken, "debug-token", cfg.DebugToken, "Operator debug token (env: SURAT_DEBUG_TOKEN)")

	return cmd
}
