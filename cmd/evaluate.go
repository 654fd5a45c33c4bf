package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-evaluator/internal/logger"
	"github.com/spigell/resume-evaluator/internal/pipeline"
	"github.com/spigell/resume-evaluator/internal/store"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var savePrompt = promptui.Select{
	Label: "Save the result to history?",
	Items: []string{PromptYes, PromptNo},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a resume against a job description and print the verdict",
	Run: func(cmd *cobra.Command, _ []string) {
		evaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringP("resume-file", "r", "", "file with the resume text")
	evaluateCmd.Flags().String("job-file", "", "file with the job description text")
	evaluateCmd.Flags().StringP("output", "o", "", "write the result JSON to a file instead of stdout")
	evaluateCmd.Flags().BoolP("yes", "y", false, "save the result to history without asking")

	evaluateCmd.MarkFlagRequired("resume-file")
	evaluateCmd.MarkFlagRequired("job-file")
}

// evaluate is the one-shot CLI entrypoint for a single resume/job pair.
func evaluate(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-evaluator", zap.String("version", version))

	resumeText, err := readInputFile(cmd, "resume-file")
	if err != nil {
		logger.Fatal("reading resume text", zap.Error(err))
	}

	jobText, err := readInputFile(cmd, "job-file")
	if err != nil {
		logger.Fatal("reading job description text", zap.Error(err))
	}

	client, err := newClient(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building provider client", zap.Error(err))
	}

	p := pipeline.New(client, logger, pipeline.Config{
		MaxAttempts:  config.AI.MaxAttempts,
		BaseBackoff:  config.AI.BaseBackoff,
		MaxLogLength: config.AI.MaxLogLength,
	})

	result, err := p.Run(ctx, resumeText, jobText)
	if err != nil {
		logger.Fatal("evaluation failed", zap.Error(err))
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("encoding result", zap.Error(err))
	}

	if output := cmd.Flag("output").Value.String(); output != "" {
		if err := os.WriteFile(output, append(pretty, '\n'), 0o644); err != nil {
			logger.Fatal("writing result to file", zap.Error(err))
		}
		logger.Info("result written", zap.String("filename", output))
	} else {
		fmt.Println(string(pretty))
	}

	logger.Info("evaluation finished",
		zap.Int("fit_score", result.Evaluation.FitScore),
		zap.Bool("is_fit", result.Evaluation.IsFit),
	)

	if config.Store == nil || config.Store.Path == "" {
		return
	}

	if cmd.Flag("yes").Value.String() == "false" {
		_, action, err := savePrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if action != PromptYes {
			return
		}
	}

	if err := saveResult(ctx, config.Store.Path, result, pretty, logger); err != nil {
		logger.Fatal("saving result to history", zap.Error(err))
	}
}

func readInputFile(cmd *cobra.Command, flag string) (string, error) {
	path := cmd.Flag(flag).Value.String()

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", flag, err)
	}

	return string(data), nil
}

func saveResult(ctx context.Context, dbPath string, result *pipeline.Result, payload []byte, logger *zap.Logger) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer db.Close()

	rec := &store.Record{
		ID:       uuid.NewString(),
		FitScore: result.Evaluation.FitScore,
		IsFit:    result.Evaluation.IsFit,
		Result:   payload,
	}

	if err := db.Save(ctx, rec); err != nil {
		return err
	}

	logger.Info("result saved to history", zap.String("id", rec.ID), zap.String("db", dbPath))
	return nil
}
