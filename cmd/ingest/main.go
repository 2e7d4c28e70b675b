package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"admin-chatbot-be/internal/bootstrap"
	"admin-chatbot-be/internal/config"
	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/internal/repository/unitofwork"
	"admin-chatbot-be/internal/service"
	"admin-chatbot-be/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var supportedExt = map[string]bool{".md": true, ".markdown": true, ".txt": true}

var (
	titleFlag string
	dryRun    bool
)

// color disables itself when stdout is not a terminal or NO_COLOR is set.
var (
	okLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	dimText   = color.New(color.FgHiBlack).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:   "ingest [path...]",
	Short: "Load text and markdown documents into the rag knowledge base",
	Long: `Reads each file (directories are walked recursively), splits it into
overlapping chunks, embeds them and stores the document with its chunks.
Re-ingesting a path replaces its previous chunks.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.Flags().StringVar(&titleFlag, "title", "", "document title (single file only; defaults to the file name)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the files that would be ingested and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .md or .txt files found")
	}
	if titleFlag != "" && len(files) > 1 {
		return fmt.Errorf("--title needs exactly one file, got %d", len(files))
	}

	if dryRun {
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	}

	ctx := cmd.Context()
	cfg := config.Load()
	log := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer log.Sync()

	registry := database.NewRegistry(cfg.Database.Connection, cfg.Database.SourceConnection)
	defer registry.Close()

	db, err := registry.Chatbot()
	if err != nil {
		return fmt.Errorf("chatbot store: %w", err)
	}
	embedder, err := bootstrap.NewEmbeddingProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("embedding provider: %w", err)
	}

	ingest := service.NewIngestService(unitofwork.NewRepositoryFactory(db), embedder, log)

	failed := 0
	for _, path := range files {
		res, err := ingestFile(ctx, ingest, path)
		if err != nil {
			reportFailure(cmd.ErrOrStderr(), path, err)
			failed++
			continue
		}
		reportResult(cmd.OutOrStdout(), path, res)
	}
	reportSummary(cmd.OutOrStdout(), len(files), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func ingestFile(ctx context.Context, ingest service.IIngestService, path string) (*service.IngestResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	title := titleFlag
	if title == "" {
		title = titleFromPath(path)
	}
	return ingest.Ingest(ctx, title, filepath.ToSlash(path), string(content))
}

func reportResult(w io.Writer, path string, res *service.IngestResult) {
	action := "added"
	if res.Replaced {
		action = "replaced"
	}
	fmt.Fprintf(w, "%s   %s %s\n", okLabel("OK"), path, dimText(fmt.Sprintf("(%d chunks, %s)", res.Chunks, action)))
}

func reportFailure(w io.Writer, path string, err error) {
	fmt.Fprintf(w, "%s %s: %v\n", failLabel("FAIL"), path, err)
}

func reportSummary(w io.Writer, total, failed int) {
	label := okLabel
	if failed > 0 {
		label = failLabel
	}
	fmt.Fprintf(w, "%s\n", label(fmt.Sprintf("%d ingested, %d failed", total-failed, failed)))
}

func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && supportedExt[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func titleFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.TrimSpace(base)
}
