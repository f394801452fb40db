package cmd

import (
	"context"
	"fmt"
	"os"

	"parts-manager/core/config"
	"parts-manager/core/database"
	"parts-manager/core/logger"
	"parts-manager/feature/parts/importer"
	"parts-manager/feature/parts/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the import command
	importMode   string
	importLayout string
	importDryRun bool
)

// importCmd imports a spreadsheet from the command line, without going
// through the HTTP API.
var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import a spreadsheet stock export into the inventory",
	Long: `Import an xlsx stock export and reconcile it against the inventory.

New references are inserted, known references are updated according to the
mode, and rejected rows are reported.

Examples:
  # Full import of a native export
  parts-manager import stock.xlsx

  # Stock-count-only update from an Odoo export
  parts-manager import --layout odoo --mode quantity odoo-stock.xlsx

  # See what an import would do without writing
  parts-manager import --dry-run stock.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importMode, "mode", "full", "Import mode: full or quantity")
	importCmd.Flags().StringVar(&importLayout, "layout", "native", "Sheet layout: native or odoo")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Report what the import would do without writing")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	mode, err := importer.ParseMode(importMode)
	if err != nil {
		return err
	}
	layout, err := importer.ParseLayout(importLayout)
	if err != nil {
		return err
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer file.Close()

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	engine := importer.NewEngine(store.New(db), cfg.Import, l)

	if importDryRun {
		preview, err := engine.Preview(ctx, file, layout)
		if err != nil {
			return fmt.Errorf("failed to preview import: %w", err)
		}
		printPreviewReport(l, preview)
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	l.Info("Starting import",
		zap.String("file", args[0]),
		zap.String("layout", string(layout)),
		zap.String("mode", string(mode)),
	)

	result, importErr := engine.Import(ctx, file, layout, mode)
	if result != nil {
		printImportReport(l, result)
	}
	if importErr != nil {
		return fmt.Errorf("import failed: %w", importErr)
	}
	return nil
}

// printImportReport prints a formatted import report using logger.
func printImportReport(l *zap.Logger, result *importer.Result) {
	l.Info("Import report",
		zap.Bool("ok", result.OK),
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("rejected", len(result.Errors)),
	)

	// Show sample of rejected rows (max 5 for logger)
	maxShow := 5
	if len(result.Errors) < maxShow {
		maxShow = len(result.Errors)
	}
	for i := 0; i < maxShow; i++ {
		rowErr := result.Errors[i]
		l.Info("Rejected row",
			zap.Int("row", rowErr.Row),
			zap.String("reason", rowErr.Reason),
		)
	}
	if len(result.Errors) > maxShow {
		l.Info("Additional rejected rows not shown", zap.Int("count", len(result.Errors)-maxShow))
	}
}

// printPreviewReport prints a formatted dry-run report using logger.
func printPreviewReport(l *zap.Logger, preview *importer.Preview) {
	l.Info("Import preview",
		zap.Int("to_insert", len(preview.ToInsert)),
		zap.Int("to_update", len(preview.ToUpdate)),
		zap.Int("rejected", len(preview.Errors)),
	)

	maxShow := 5
	if len(preview.ToUpdate) < maxShow {
		maxShow = len(preview.ToUpdate)
	}
	for i := 0; i < maxShow; i++ {
		change := preview.ToUpdate[i]
		l.Info("Pending quantity change",
			zap.String("business_ref", change.BusinessRef),
			zap.Int("current", change.CurrentQuantity),
			zap.Int("proposed", change.ProposedQuantity),
		)
	}
	if len(preview.ToUpdate) > maxShow {
		l.Info("Additional changes not shown", zap.Int("count", len(preview.ToUpdate)-maxShow))
	}
}
