package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rom8726/uutreport/client"
	"github.com/rom8726/uutreport/exporters"
)

func newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <report.json> [report.json ...]",
		Short: "Upload report files to a WATS server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if serverURL, _ := cmd.Flags().GetString("server"); serverURL != "" {
				cfg.ServerURL = serverURL
			}
			if cfg.ServerURL == "" {
				return errors.New("no server URL: pass --server or set server_url in " + configFileName)
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			opts := []client.Option{client.WithLogger(logger)}
			if cfg.Token != "" {
				opts = append(opts, client.WithToken(cfg.Token))
			}
			cl, err := client.New(cfg.ServerURL, opts...)
			if err != nil {
				return err
			}

			var exporter *exporters.PrometheusExporter
			if cfg.Prometheus.Enabled {
				exporter = exporters.NewPrometheusExporter(cfg.Prometheus.Namespace)
				metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
				go serveMetrics(logger, exporter, metricsAddr)
			}

			var failed int
			for _, path := range args {
				report, err := readReport(path)
				if err != nil {
					return err
				}

				result, err := cl.UploadReport(cmd.Context(), report)
				if exporter != nil {
					exporter.Record(report)
					exporter.RecordUpload(err == nil)
				}
				if err != nil {
					logger.Error("upload failed", zap.String("file", path), zap.Error(err))
					failed++

					continue
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s uploaded: %s\n", path, cl.ViewURL(result.ID))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d uploads failed", failed, len(args))
			}

			return nil
		},
	}

	cmd.Flags().String("server", "", "WATS server base URL, e.g. https://acme.wats.com")
	cmd.Flags().String("metrics-addr", ":9090", "listen address for the Prometheus endpoint")

	return cmd
}

func serveMetrics(logger *zap.Logger, exporter *exporters.PrometheusExporter, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", exporter.Handler())

	logger.Info("serving metrics", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics server stopped", zap.Error(err))
	}
}
