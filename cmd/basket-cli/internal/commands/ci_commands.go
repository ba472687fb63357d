package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bensternthal/basket/internal/app"
	"github.com/bensternthal/basket/internal/domain/pipeline"
	"github.com/bensternthal/basket/internal/infrastructure/coverage"
	"github.com/bensternthal/basket/internal/infrastructure/notification"
	"github.com/bensternthal/basket/internal/infrastructure/persistence"
	"github.com/bensternthal/basket/internal/infrastructure/runner"
	"github.com/bensternthal/basket/internal/pkg/config"
	"github.com/bensternthal/basket/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// CICommandHandler encapsulates logic for running the build pipeline via CLI.
type CICommandHandler struct {
	logger logger.Logger
}

// NewCICommandHandler initializes and returns a CICommandHandler instance
// with a configured logger.
func NewCICommandHandler() (*CICommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &CICommandHandler{logger: loggerInstance}, nil
}

// ValidatePipelineCmd checks a pipeline definition file for well-formedness
func (commandHandler *CICommandHandler) ValidatePipelineCmd(cmd *cobra.Command, _ []string) {
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		commandHandler.logger.Error("invalid file flag ", err)
		return
	}

	settings, err := config.LoadPipelineSettings(file)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	commandHandler.logger.Info("Pipeline file ", file, " is valid (language: ", settings.Language,
		", script commands: ", len(settings.Script), ")")
}

// RunPipelineCmd executes the pipeline defined in a file and records the build
func (commandHandler *CICommandHandler) RunPipelineCmd(cmd *cobra.Command, _ []string) {
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		commandHandler.logger.Error("invalid file flag ", err)
		return
	}
	workDir, err := cmd.Flags().GetString("work-dir")
	if err != nil {
		commandHandler.logger.Error("invalid work-dir flag ", err)
		return
	}
	coverageFile, err := cmd.Flags().GetString("coverage-json")
	if err != nil {
		commandHandler.logger.Error("invalid coverage-json flag ", err)
		return
	}
	repoToken, err := cmd.Flags().GetString("repo-token")
	if err != nil {
		commandHandler.logger.Error("invalid repo-token flag ", err)
		return
	}
	endpoint, err := cmd.Flags().GetString("coverage-endpoint")
	if err != nil {
		commandHandler.logger.Error("invalid coverage-endpoint flag ", err)
		return
	}

	settings, err := config.LoadPipelineSettings(file)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	db, err := setupDatabase()
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	buildRepo, err := persistence.NewGormBuildRepository(db, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	notifiers, err := commandHandler.buildNotifiers(settings)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	stepRunner, err := runner.NewShellRunner(workDir, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	var reporter pipeline.CoverageReporter
	var collector app.CoverageCollector
	if coverageFile != "" && repoToken != "" {
		reporter, err = coverage.NewCoverallsClient(endpoint, commandHandler.logger)
		if err != nil {
			commandHandler.logger.Error(err)
			os.Exit(1)
		}
		collector = coverageJobFromFile(coverageFile, repoToken)
	}

	buildService, err := app.NewBuildService(settings, stepRunner, buildRepo, notifiers, reporter, collector, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	build, err := buildService.Run(context.Background())
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	if !build.Passed() {
		os.Exit(1)
	}
}

// ReportCoverageCmd uploads a coverage payload file without running a build
func (commandHandler *CICommandHandler) ReportCoverageCmd(cmd *cobra.Command, _ []string) {
	coverageFile, err := cmd.Flags().GetString("coverage-json")
	if err != nil {
		commandHandler.logger.Error("invalid coverage-json flag ", err)
		return
	}
	repoToken, err := cmd.Flags().GetString("repo-token")
	if err != nil {
		commandHandler.logger.Error("invalid repo-token flag ", err)
		return
	}
	endpoint, err := cmd.Flags().GetString("coverage-endpoint")
	if err != nil {
		commandHandler.logger.Error("invalid coverage-endpoint flag ", err)
		return
	}

	reporter, err := coverage.NewCoverallsClient(endpoint, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	job, err := coverageJobFromFile(coverageFile, repoToken)(context.Background())
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	if err := reporter.Report(context.Background(), job); err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}
}

// ListBuildsCmd prints the recorded build history
func (commandHandler *CICommandHandler) ListBuildsCmd(cmd *cobra.Command, _ []string) {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		commandHandler.logger.Error("invalid limit flag ", err)
		return
	}

	db, err := setupDatabase()
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	buildRepo, err := persistence.NewGormBuildRepository(db, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	builds, err := buildRepo.List(context.Background(), limit)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	for _, build := range builds {
		commandHandler.logger.Info("#", build.Number, " ", build.State, " (", build.Duration(), ", ", len(build.Results), " commands)")
	}
}

// buildNotifiers creates one notifier per configured IRC channel.
func (commandHandler *CICommandHandler) buildNotifiers(settings *config.PipelineSettings) ([]pipeline.Notifier, error) {
	if settings.Notifications == nil || settings.Notifications.IRC == nil {
		return nil, nil
	}

	irc := settings.Notifications.IRC
	var notifiers []pipeline.Notifier
	for _, channel := range irc.Channels {
		notifier, err := notification.NewIRCNotifier(channel, irc.Nick, irc.UseNotice, commandHandler.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create notifier for %s: %w", channel, err)
		}
		notifiers = append(notifiers, notifier)
	}

	return notifiers, nil
}

// coverageJobFromFile returns a collector that reads a prepared coverage
// payload from disk. The file holds the job document the tracking service
// expects; the repo token is injected at upload time so it never needs to be
// committed alongside the payload.
func coverageJobFromFile(path, repoToken string) app.CoverageCollector {
	return func(context.Context) (*pipeline.CoverageJob, error) {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("failed to read coverage file %s: %w", path, err)
		}

		var job pipeline.CoverageJob
		if err := json.Unmarshal(data, &job); err != nil {
			return nil, fmt.Errorf("failed to parse coverage file %s: %w", path, err)
		}

		job.RepoToken = repoToken
		if job.ServiceName == "" {
			job.ServiceName = "basket-ci"
		}
		return &job, nil
	}
}

// InitCICommands registers pipeline-related commands
func InitCICommands(rootCmd *cobra.Command) error {
	handler, err := NewCICommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create CI command handler %w", err)
	}

	var validatePipelineCmd = &cobra.Command{
		Use:   "validate-pipeline",
		Short: "Validate a pipeline definition file",
		Run:   handler.ValidatePipelineCmd,
	}
	validatePipelineCmd.Flags().StringP("file", "", ".ci.yaml", "Path to the pipeline definition file")
	rootCmd.AddCommand(validatePipelineCmd)

	var runPipelineCmd = &cobra.Command{
		Use:   "run-pipeline",
		Short: "Run the pipeline and record the build",
		Run:   handler.RunPipelineCmd,
	}
	runPipelineCmd.Flags().StringP("file", "", ".ci.yaml", "Path to the pipeline definition file")
	runPipelineCmd.Flags().StringP("work-dir", "", "", "Working directory for pipeline commands")
	runPipelineCmd.Flags().StringP("coverage-json", "", "", "Path to the coverage payload written by the test phase")
	runPipelineCmd.Flags().StringP("repo-token", "", "", "Repo token for the coverage tracking service")
	runPipelineCmd.Flags().StringP("coverage-endpoint", "", "", "Coverage tracking endpoint (default: coveralls)")
	rootCmd.AddCommand(runPipelineCmd)

	var reportCoverageCmd = &cobra.Command{
		Use:   "report-coverage",
		Short: "Upload a coverage payload file",
		Run:   handler.ReportCoverageCmd,
	}
	reportCoverageCmd.Flags().StringP("coverage-json", "", "", "Path to the coverage payload file")
	reportCoverageCmd.Flags().StringP("repo-token", "", "", "Repo token for the coverage tracking service")
	reportCoverageCmd.Flags().StringP("coverage-endpoint", "", "", "Coverage tracking endpoint (default: coveralls)")
	rootCmd.AddCommand(reportCoverageCmd)

	var listBuildsCmd = &cobra.Command{
		Use:   "list-builds",
		Short: "List recorded builds",
		Run:   handler.ListBuildsCmd,
	}
	listBuildsCmd.Flags().IntP("limit", "", 20, "Maximum number of builds to list")
	rootCmd.AddCommand(listBuildsCmd)

	return nil
}
