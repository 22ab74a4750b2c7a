package main

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	"github.com/edilware/computo"
	"github.com/edilware/computo/internal/llm"
)

func main() {
	cmd := &cli.Command{
		Name:  "computo",
		Usage: "Segment and extract work items from computo metrico PDFs",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "chunks",
				Usage: "Segment a PDF into work item chunks",
				Flags: []cli.Flag{
					inputFlag(),
					outputFlag(),
				},
				Action: runChunks,
			},
			{
				Name:  "rows",
				Usage: "Split pages into per-row PNG crops",
				Flags: append([]cli.Flag{
					inputFlag(),
					&cli.StringFlag{
						Name:  "out-dir",
						Usage: "Directory for row images (default: current directory)",
						Value: ".",
					},
					&cli.StringFlag{
						Name:  "zip",
						Usage: "Also bundle the row images into this zip archive",
					},
				}, rowFlags()...),
				Action: runRows,
			},
			{
				Name:  "extract",
				Usage: "Segment a PDF and extract structured work items via an LLM",
				Flags: []cli.Flag{
					inputFlag(),
					outputFlag(),
					&cli.StringFlag{
						Name:  "model",
						Usage: "Model name for field extraction",
					},
					&cli.StringFlag{
						Name:  "base-url",
						Usage: "Chat completions API base URL",
					},
				},
				Action: runExtract,
			},
			{
				Name:  "quality",
				Usage: "Measure text extraction quality of a PDF",
				Flags: []cli.Flag{
					inputFlag(),
				},
				Action: runQuality,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "Input PDF file path",
		Required: true,
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

// rowFlags exposes the row-splitting tunables with the library defaults.
func rowFlags() []cli.Flag {
	defaults := computo.DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "keyword",
			Usage: "Row delimiter keyword",
			Value: defaults.Keyword,
		},
		&cli.IntFlag{
			Name:  "dpi",
			Usage: "Render resolution for row crops",
			Value: defaults.DPI,
		},
		&cli.FloatFlag{
			Name:  "left-margin",
			Usage: "Left crop margin in PDF points",
			Value: defaults.LeftMargin,
		},
		&cli.FloatFlag{
			Name:  "right-margin",
			Usage: "Right crop margin in PDF points",
			Value: defaults.RightMargin,
		},
		&cli.FloatFlag{
			Name:  "extend-top",
			Usage: "Adjustment of the content top in PDF points (negative reaches above)",
			Value: defaults.ExtendTop,
		},
		&cli.FloatFlag{
			Name:  "extend-bottom",
			Usage: "Extension below the keyword baseline in PDF points",
			Value: defaults.ExtendBottom,
		},
		&cli.FloatFlag{
			Name:  "keyword-padding",
			Usage: "Extra room under the keyword in PDF points",
			Value: defaults.KeywordPadding,
		},
	}
}

// rowConfig threads the row-splitting flags into a Config.
func rowConfig(cmd *cli.Command) computo.Config {
	cfg := computo.DefaultConfig()
	cfg.Keyword = cmd.String("keyword")
	cfg.DPI = cmd.Int("dpi")
	cfg.LeftMargin = cmd.Float("left-margin")
	cfg.RightMargin = cmd.Float("right-margin")
	cfg.ExtendTop = cmd.Float("extend-top")
	cfg.ExtendBottom = cmd.Float("extend-bottom")
	cfg.KeywordPadding = cmd.Float("keyword-padding")
	return cfg
}

func setupLogger(cmd *cli.Command) *slog.Logger {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newProcessor initialises a pdfium worker pool and wraps it in a Processor.
// The returned closer shuts the pool down.
func newProcessor(cmd *cli.Command, cfg computo.Config) (*computo.Processor, func(), error) {
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialise pdfium: %w", err)
	}

	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to get pdfium instance: %w", err)
	}

	cfg.Logger = setupLogger(cmd)
	proc, err := computo.NewProcessor(instance, cfg)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return proc, func() { pool.Close() }, nil
}

func runChunks(_ context.Context, cmd *cli.Command) error {
	proc, closePool, err := newProcessor(cmd, computo.DefaultConfig())
	if err != nil {
		return err
	}
	defer closePool()

	result, err := proc.SegmentFile(cmd.String("input"))
	if err != nil {
		return fmt.Errorf("failed to segment PDF: %w", err)
	}

	type chunkOut struct {
		Ordinal  int    `json:"ordinal"`
		Strategy string `json:"strategy"`
		Text     string `json:"text"`
	}
	out := struct {
		Strategy string     `json:"strategy"`
		Layout   string     `json:"layout"`
		Chunks   []chunkOut `json:"chunks"`
	}{
		Strategy: result.Strategy.String(),
		Layout:   result.Layout.String(),
		Chunks:   make([]chunkOut, 0, len(result.Chunks)),
	}
	for _, c := range result.Chunks {
		out.Chunks = append(out.Chunks, chunkOut{
			Ordinal:  c.Ordinal,
			Strategy: c.Strategy.String(),
			Text:     c.Text(),
		})
	}
	return writeJSON(cmd.String("output"), out)
}

func runRows(_ context.Context, cmd *cli.Command) error {
	proc, closePool, err := newProcessor(cmd, rowConfig(cmd))
	if err != nil {
		return err
	}
	defer closePool()

	crops, err := proc.SplitRows(cmd.String("input"))
	if err != nil {
		return fmt.Errorf("failed to split rows: %w", err)
	}

	outDir := cmd.String("out-dir")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	names := make([]string, 0, len(crops))
	for _, crop := range crops {
		name := fmt.Sprintf("page%02d_row%02d.png", crop.Page, crop.RowIndex)
		if err := os.WriteFile(filepath.Join(outDir, name), crop.ImageBytes, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		names = append(names, name)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d row images to %s\n", len(crops), outDir)

	if zipPath := cmd.String("zip"); zipPath != "" {
		if err := writeZip(zipPath, outDir, names); err != nil {
			return fmt.Errorf("failed to write zip archive: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Archive written to %s\n", zipPath)
	}
	return nil
}

func writeZip(zipPath, dir string, names []string) error {
	f, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return zw.Close()
}

func runExtract(ctx context.Context, cmd *cli.Command) error {
	proc, closePool, err := newProcessor(cmd, computo.DefaultConfig())
	if err != nil {
		return err
	}
	defer closePool()

	logger := setupLogger(cmd)
	result, err := proc.SegmentFile(cmd.String("input"))
	if err != nil {
		return fmt.Errorf("failed to segment PDF: %w", err)
	}
	if len(result.Chunks) == 0 {
		return fmt.Errorf("no work item chunks identified")
	}

	client := llm.NewClient(llm.Config{
		Model:   cmd.String("model"),
		BaseURL: cmd.String("base-url"),
	}, logger)

	items := make([]computo.WorkItem, 0, len(result.Chunks))
	for _, chunk := range result.Chunks {
		fields, _, err := client.ExtractFields(ctx, llm.ExtractRequest{
			ChunkText:    chunk.Text(),
			ChunkOrdinal: chunk.Ordinal,
			Strategy:     chunk.Strategy.String(),
			SourceFile:   filepath.Base(cmd.String("input")),
		})
		if err != nil {
			if errors.Is(err, llm.ErrRejected) {
				continue
			}
			logger.Warn("skipping chunk after extraction failure",
				"ordinal", chunk.Ordinal, "error", err)
			continue
		}
		items = append(items, toWorkItem(fields))
	}

	if err := computo.NormalizeWorkItems(items); err != nil {
		return fmt.Errorf("failed to normalize work items: %w", err)
	}

	out := struct {
		WorkItems   []computo.WorkItem `json:"workItems"`
		TotalAmount float64            `json:"totalAmount"`
	}{
		WorkItems:   items,
		TotalAmount: computo.TotalAmount(items),
	}
	return writeJSON(cmd.String("output"), out)
}

func toWorkItem(fields llm.ItemFields) computo.WorkItem {
	item := computo.WorkItem{
		ProgressiveNumber: fields.ProgressiveNumber,
		Description:       fields.Description,
		UnitOfMeasurement: fields.UnitOfMeasurement,
	}
	if fields.ReferenceCode != nil {
		item.ReferenceCode = *fields.ReferenceCode
	}
	if fields.Quantity != nil {
		item.Quantity = *fields.Quantity
	}
	if fields.UnitPrice != nil {
		item.UnitPrice = *fields.UnitPrice
	}
	return item
}

func runQuality(_ context.Context, cmd *cli.Command) error {
	proc, closePool, err := newProcessor(cmd, computo.DefaultConfig())
	if err != nil {
		return err
	}
	defer closePool()

	report, err := proc.QualityFile(cmd.String("input"))
	if err != nil {
		return fmt.Errorf("failed to measure quality: %w", err)
	}
	return writeJSON("", report)
}

func writeJSON(outputPath string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	data = append(data, '\n')
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}
