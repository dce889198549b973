package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/Purple-Horizons/sanity-mcp/client"
	"github.com/Purple-Horizons/sanity-mcp/internal/svcfields"
)

func newOpsClient(logger pslog.Logger) (*client.Client, error) {
	cfg, err := sanityConfigFromViper()
	if err != nil {
		return nil, err
	}
	opts := append([]client.Option{
		client.WithLogger(svcfields.WithSubsystem(logger, "client.sdk")),
	}, clientOptionsFromViper()...)
	return client.New(cfg, opts...)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newQueryCommand(logger pslog.Logger) *cobra.Command {
	var paramsJSON string
	cmd := &cobra.Command{
		Use:   "query <groq>",
		Short: "Run a GROQ query and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cli, err := newOpsClient(logger)
			if err != nil {
				return err
			}
			var params map[string]any
			if strings.TrimSpace(paramsJSON) != "" {
				if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
					return fmt.Errorf("parse --params: %w", err)
				}
			}
			res, err := cli.Query(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			logger.Debug("query complete", "ms", res.ElapsedMS)
			return printJSON(cmd, json.RawMessage(res.Result))
		},
	}
	cmd.Flags().StringVar(&paramsJSON, "params", "", "query parameters as a JSON object, bound as $name")
	return cmd
}

func newGetCommand(logger pslog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a document by id and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cli, err := newOpsClient(logger)
			if err != nil {
				return err
			}
			doc, err := cli.GetDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if doc == nil {
				return fmt.Errorf("document %s not found", args[0])
			}
			return printJSON(cmd, doc)
		},
	}
}

func newPublishCommand(logger pslog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <id>",
		Short: "Promote a draft to its published id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cli, err := newOpsClient(logger)
			if err != nil {
				return err
			}
			resp, err := cli.PublishDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %s (transaction %s)\n", args[0], resp.TransactionID)
			return nil
		},
	}
}

func newUnpublishCommand(logger pslog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "unpublish <id>",
		Short: "Retract a published document into a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cli, err := newOpsClient(logger)
			if err != nil {
				return err
			}
			resp, err := cli.UnpublishDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unpublished %s (transaction %s)\n", args[0], resp.TransactionID)
			return nil
		},
	}
}

func newUploadCommand(logger pslog.Logger) *cobra.Command {
	var contentType string
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image file and print the created asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cli, err := newOpsClient(logger)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ct := strings.TrimSpace(contentType)
			if ct == "" {
				ct, err = detectContentType(f)
				if err != nil {
					return err
				}
			}
			asset, err := cli.UploadImage(cmd.Context(), f, client.UploadOptions{
				Filename:    filepath.Base(args[0]),
				ContentType: ct,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s (%s, %s)\n", asset.ID, asset.MimeType, humanizeBytes(asset.Size))
			if asset.URL != "" {
				fmt.Fprintln(cmd.OutOrStdout(), asset.URL)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&contentType, "content-type", "", "payload media type (default: sniffed from the file)")
	return cmd
}

// detectContentType sniffs the media type from the file's first bytes and
// rewinds the handle for the upload.
func detectContentType(f *os.File) (string, error) {
	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return "", fmt.Errorf("read %s: %w", f.Name(), err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}

func humanizeBytes(n int64) string {
	return strings.ReplaceAll(humanize.Bytes(uint64(n)), " ", "")
}
