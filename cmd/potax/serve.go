package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/potax/internal/certs"
	"github.com/Veraticus/potax/internal/web"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the classification form over HTTP",
		Long: `Serve the web form, a JSON API at POST /api/v1/classify and a health
check at GET /healthz. With --tls the server uses a self-signed localhost
certificate, created on first use. The server stops gracefully on interrupt.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, settings, err := createFlow()
			if err != nil {
				return err
			}

			opts := []web.Option{web.WithLogger(slog.Default())}
			if settings.Server.TLS {
				cert, err := certs.NewStore(settings.Server.CertDir).Certificate()
				if err != nil {
					return fmt.Errorf("failed to load TLS certificate: %w", err)
				}
				opts = append(opts, web.WithCertificate(cert))
			}

			srv, err := web.New(f, opts...)
			if err != nil {
				return err
			}

			return srv.ListenAndServe(cmd.Context(), settings.Server.Addr)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default localhost:8080)")
	bindFlag(cmd, "server.addr", "addr")
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed localhost certificate")
	bindFlag(cmd, "server.tls", "tls")
	cmd.Flags().String("cert-dir", "", "directory holding the localhost certificate (default ~/.config/potax/certs)")
	bindFlag(cmd, "server.cert_dir", "cert-dir")

	return cmd
}
