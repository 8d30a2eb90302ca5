package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"check-elasticsearch-snapshots/config"
	"check-elasticsearch-snapshots/internal/client"
	"check-elasticsearch-snapshots/internal/exporter"
	"check-elasticsearch-snapshots/pkg/check"
	"check-elasticsearch-snapshots/pkg/check/aggregates"

	"github.com/spf13/cobra"
)

type checkFlags struct {
	configFile string
	server     string
	port       uint32
	warning    string
	critical   string
	repository string
	textfile   string
	logLevel   string
	logFormat  string
}

func buildCheckCmd() *cobra.Command {
	checkCmd, flags := newCheckCommand()
	checkCmd.Run = func(cmd *cobra.Command, args []string) {
		logger := buildLogger(flags.logLevel, flags.logFormat)
		line, status := runCheck(logger, cmd, *flags)
		fmt.Println(line)
		os.Exit(status.ExitCode())
	}
	return checkCmd
}

func newCheckCommand() (*cobra.Command, *checkFlags) {
	flags := &checkFlags{}
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Runs the snapshot age check once and exits with the monitoring status code",
	}
	checkCmd.Flags().StringVar(&flags.configFile, "config", "", "Path to a YAML configuration file providing flag defaults")
	checkCmd.Flags().StringVarP(&flags.server, "server", "s", "", "Hostname of the Elasticsearch cluster")
	checkCmd.Flags().Uint32VarP(&flags.port, "port", "p", 0, "HTTP port of the Elasticsearch cluster")
	checkCmd.Flags().StringVarP(&flags.warning, "warning", "w", "", "Warning age threshold: seconds, or days with a 'd' suffix")
	checkCmd.Flags().StringVarP(&flags.critical, "critical", "c", "", "Critical age threshold, same format as --warning")
	checkCmd.Flags().StringVarP(&flags.repository, "repository", "r", "", "Restrict the check to one snapshot repository")
	checkCmd.Flags().StringVar(&flags.textfile, "textfile", "", "Also write Prometheus textfile-collector metrics to this path")
	checkCmd.Flags().StringVar(&flags.logLevel, "log-level", "info", "Logger log level (debug, info, warn, error)")
	checkCmd.Flags().StringVar(&flags.logFormat, "log-format", "text", "Logger logs format (text, json)")
	return checkCmd, flags
}

// runCheck executes the whole check and returns the summary line and
// severity. Every failure converges here: configuration and query errors
// exit CRITICAL, and a panic anywhere in the run is reported with its
// stack trace and exits CRITICAL as well.
func runCheck(logger *slog.Logger, cmd *cobra.Command, flags checkFlags) (line string, status aggregates.Severity) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("unexpected failure: %v\n%s", r, debug.Stack()))
			line = fmt.Sprintf("%s - unexpected failure: %v", aggregates.SeverityCritical, r)
			status = aggregates.SeverityCritical
		}
	}()
	configuration, err := mergeConfiguration(cmd, flags)
	if err != nil {
		logger.Error(err.Error())
		return fmt.Sprintf("%s - %s", aggregates.SeverityCritical, err.Error()), aggregates.SeverityCritical
	}
	thresholds, err := configuration.Validate()
	if err != nil {
		logger.Error(err.Error())
		return fmt.Sprintf("%s - %s", aggregates.SeverityCritical, err.Error()), aggregates.SeverityCritical
	}
	gateway := client.New(logger, configuration.URL())
	service := check.New(logger, gateway, thresholds)
	nowMillis := time.Now().UnixMilli()
	report, err := service.Run(context.Background(), configuration.Repository, nowMillis)
	if err != nil {
		logger.Error(err.Error())
		return fmt.Sprintf("%s - %s", aggregates.SeverityCritical, err.Error()), aggregates.SeverityCritical
	}
	if configuration.Textfile != "" {
		// a broken metrics export must not change the check verdict
		if err := exporter.WriteTextfile(configuration.Textfile, report); err != nil {
			logger.Error(err.Error())
		}
	}
	return check.FormatReport(report), report.Status
}

// mergeConfiguration layers the command line flags over the optional yaml
// configuration file. A flag explicitly set always wins.
func mergeConfiguration(cmd *cobra.Command, flags checkFlags) (config.Configuration, error) {
	configuration := config.Configuration{}
	if flags.configFile != "" {
		loaded, err := config.Load(flags.configFile)
		if err != nil {
			return configuration, err
		}
		configuration = loaded
	}
	if cmd.Flags().Changed("server") {
		configuration.Server = flags.server
	}
	if cmd.Flags().Changed("port") {
		configuration.Port = flags.port
	}
	if cmd.Flags().Changed("warning") {
		configuration.Warning = flags.warning
	}
	if cmd.Flags().Changed("critical") {
		configuration.Critical = flags.critical
	}
	if cmd.Flags().Changed("repository") {
		configuration.Repository = flags.repository
	}
	if cmd.Flags().Changed("textfile") {
		configuration.Textfile = flags.textfile
	}
	return configuration, nil
}
