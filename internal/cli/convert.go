// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jalopezm-ui/gift-moodle-generator/internal/config"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/gift"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/output"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/sheet"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/sheet/readers"
)

func newConvertCmd(configPath *string) *cobra.Command {
	var showPreview bool

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a csv, xlsx, yaml or json sheet into a GIFT file",
		Long: "Convert reads FILE (or stdin when FILE is \"-\"), writes the GIFT document to\n" +
			"--output and logs how many questions were generated. Rows without a statement\n" +
			"or a correct answer are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return runConvert(cmd, cfg, args[0], showPreview)
		},
	}

	flags := cmd.Flags()
	flags.String("format", "", "input format: csv, xlsx, yaml or json (default: from the file extension)")
	flags.String("wrong-score", gift.DefaultPenalty.String(), "distractor weight in percent: 0, -5, -10, -20, -25, -33.33333 or -50")
	flags.String("category", "", "Moodle category directive, e.g. Psicobiologia/Tema1")
	flags.StringP("output", "o", output.DefaultFilename, `output file, "-" for stdout`)
	flags.Int("preview-chars", output.DefaultPreviewChars, "characters shown by --preview")
	flags.BoolVar(&showPreview, "preview", false, "print a preview of the document to stderr")
	return cmd
}

func runConvert(cmd *cobra.Command, cfg *config.Config, input string, showPreview bool) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	content, name, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	loaded, err := readers.NewDefaultLoader().LoadWithMeta(cmd.Context(), sheet.Source{
		Content: content,
		Format:  cfg.Format,
		Name:    name,
	})
	if err != nil {
		return fmt.Errorf("error processing file: %w", err)
	}
	log.Printf("[Convert] Loaded %s with the %s reader: %d rows", name, loaded.ReaderUsed, len(loaded.Table.Rows))

	result := gift.Convert(loaded.Table, opts)
	if err := output.WriteFile(cfg.Output, result.Document, cmd.OutOrStdout()); err != nil {
		return err
	}

	log.Printf("[Convert] %d questions, %d options/question, penalty %s%%", result.Questions, result.Options, opts.Penalty)
	if result.Questions == 0 {
		log.Printf("[Convert] No questions generated: the sheet needs a statement (enunciado/pregunta/question) and a correct answer (correcta/respuesta/correct/answer) column")
	}
	if cfg.Output != "-" {
		log.Printf("[Convert] Wrote %s", cfg.Output)
	}

	if showPreview {
		preview, _ := output.Preview(result.Document, cfg.PreviewChars)
		fmt.Fprintln(cmd.ErrOrStderr(), preview)
	}
	return nil
}

func readInput(stdin io.Reader, input string) ([]byte, string, error) {
	if input == "-" {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return content, "stdin", nil
	}
	content, err := os.ReadFile(input)
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}
	return content, filepath.Base(input), nil
}
