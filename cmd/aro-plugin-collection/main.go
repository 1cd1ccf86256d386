// Command aro-plugin-collection hosts the Go collection qualifier plugin:
// print the manifest, run a single qualifier from the command line, or serve
// the plugin over HTTP for an ARO host.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	collection "github.com/arolang/plugin-go-collection"
	"github.com/arolang/plugin-go-collection/internal/config"
	"github.com/arolang/plugin-go-collection/internal/server"
)

var (
	// Global flags
	verbose   bool
	prettyOut bool

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "aro-plugin-collection",
	Short: "ARO collection qualifier plugin (Go)",
	Long: `aro-plugin-collection provides the ARO collection qualifiers
(first, last, size, sort, unique, sum, avg, min, max) evaluated directly
over scanned JSON documents.

Use "info" to print the plugin manifest, "qualify" to run one qualifier
against a document, or "serve" to expose the plugin over HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the plugin manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := collection.PluginInfo()
		if err != nil {
			return fmt.Errorf("building manifest: %w", err)
		}
		return writeJSON(cmd.OutOrStdout(), data)
	},
}

var qualifyCmd = &cobra.Command{
	Use:   "qualify <name> [document]",
	Short: "Run one qualifier against an input document",
	Long: `Run the named qualifier against a JSON input document of the form
{"type":"List"|"String","value":...}. The document is taken from the second
argument, or from stdin when omitted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(cmd, args)
		if err != nil {
			return err
		}
		logger.Debug("evaluating qualifier",
			zap.String("qualifier", args[0]),
			zap.Int("input_bytes", len(doc)))
		return writeJSON(cmd.OutOrStdout(), collection.Evaluate(args[0], doc))
	},
}

var executeCmd = &cobra.Command{
	Use:   "execute <name> [document]",
	Short: "Run one action (this plugin defines none)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(cmd, args)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), collection.ExecuteAction(args[0], doc))
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the plugin over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if verbose {
			cfg.Debug = true
		}
		return server.Start(cfg, logger)
	},
}

// readDocument takes the input document from the trailing argument or stdin.
func readDocument(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 1 {
		return []byte(args[1]), nil
	}
	doc, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("reading document from stdin: %w", err)
	}
	return doc, nil
}

func writeJSON(w io.Writer, data []byte) error {
	if prettyOut {
		data = pretty.Pretty(data)
	} else {
		data = append(data, '\n')
	}
	_, err := w.Write(data)
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&prettyOut, "pretty", false, "pretty-print JSON output")
	rootCmd.AddCommand(infoCmd, qualifyCmd, executeCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
