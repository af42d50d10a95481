package cmd

import (
	"errors"
	"fmt"

	"laohotel/config"
	ai "laohotel/services/intelligence"
	"laohotel/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	kbInput  string
	kbOutput string
	kbForce  bool
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Manage the retrieval knowledge base",
}

var kbEmbedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Embed knowledge base chunks and write them back",
	Long: `Reads a JSON or YAML knowledge base, embeds every chunk that has no
vector yet (or all of them with --force) and saves the result. The output
format follows the output file extension.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.AppConfig
		logger := utils.GetLogger()

		in := kbInput
		if in == "" {
			in = cfg.KnowledgeBasePath
		}
		out := kbOutput
		if out == "" {
			out = in
		}

		backend, err := openModels(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("kb embed: %w", err)
		}
		if backend.close != nil {
			defer backend.close()
		}
		embedder, cache := cachedEmbedder(cfg, backend, logger)
		if cache != nil {
			defer cache.Close()
		}
		if embedder == nil {
			return errors.New("kb embed: no embedding backend configured, set LLM_PROVIDER")
		}

		kb, err := ai.LoadKnowledgeBase(in)
		if err != nil {
			return fmt.Errorf("kb embed: %w", err)
		}
		if kbForce {
			kb.Embeddings = nil
		}
		n, err := kb.EmbedMissing(ctx, embedder)
		if err != nil {
			return fmt.Errorf("kb embed: %w", err)
		}
		if err := kb.Save(out); err != nil {
			return fmt.Errorf("kb embed: %w", err)
		}
		logger.Info("Knowledge base written", zap.String("path", out), zap.Int("chunks", kb.Len()), zap.Int("embedded", n))
		return nil
	},
}

func init() {
	kbEmbedCmd.Flags().StringVarP(&kbInput, "in", "i", "", "Knowledge base to read (defaults to KNOWLEDGE_BASE_PATH)")
	kbEmbedCmd.Flags().StringVarP(&kbOutput, "out", "o", "", "Where to write the result (defaults to the input)")
	kbEmbedCmd.Flags().BoolVar(&kbForce, "force", false, "Re-embed chunks that already have vectors")
	kbCmd.AddCommand(kbEmbedCmd)
}
