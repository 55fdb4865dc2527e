package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/arnavsurve/shipstep/pkg/core"
	"github.com/arnavsurve/shipstep/pkg/log"
	"github.com/arnavsurve/shipstep/pkg/log/sinks"
	"github.com/arnavsurve/shipstep/pkg/security"
	"github.com/arnavsurve/shipstep/pkg/version"

	// Ensure all runner implementations are initialized
	_ "github.com/arnavsurve/shipstep/pkg/steprunner/runners"
)

type ReleaseCmd struct {
	Kind    string `arg:"" optional:"" default:"prerelease" help:"Version bump kind (major, minor, patch, premajor, preminor, prepatch, prerelease)."`
	Project string `help:"The project configuration file." default:"shipstep.yml"`
}

func (r *ReleaseCmd) Run() error {
	runID := uuid.New().String()

	logsDir := ".shipstep/logs"
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("creating logs directory %q: %w", logsDir, err)
	}
	logFilePath := filepath.Join(logsDir, fmt.Sprintf("%s.json", runID))
	fileSink, err := sinks.NewFileSink(logFilePath)
	if err != nil {
		return fmt.Errorf("creating file log sink: %w", err)
	}

	logRouter := log.NewRouter()
	logRouter.AddSink(sinks.NewConsoleSink())
	logRouter.AddSink(fileSink)

	logger := zerolog.New(logRouter).With().Timestamp().Logger()

	logger.Info().Msgf("Starting release run with ID: %s", runID)
	logger.Info().Msgf("Logs will be saved to %q", logFilePath)

	// Graceful shutdown of logging sinks
	defer func() {
		if err := logRouter.Close(); err != nil {
			fmt.Printf("Error during log shutdown: %v\n", err)
		}
	}()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Err(err).Msg("No .env file found, relying on existing ENV")
	}

	project, err := core.LoadProjectFromFile(r.Project)
	if err != nil {
		logger.Error().Err(err).Msgf("Failed to load project file %s", r.Project)
		return fmt.Errorf("loading project file %q: %w", r.Project, err)
	}
	logger.Info().Msgf("Successfully loaded project: %q", project.Name)

	projectAbsPath, err := filepath.Abs(r.Project)
	if err != nil {
		return fmt.Errorf("determining absolute path for project file %q: %w", r.Project, err)
	}
	projectDir := filepath.Dir(projectAbsPath)

	// Keep credential values out of every sink
	logRouter.SetRedactor(security.NewRedactor(project.Secrets))

	kind := r.Kind
	if kind == "" {
		kind = string(version.DefaultKind)
	}

	engine := core.NewEngine(logger)
	execCtx := core.ExecutionContext{
		Project:    project,
		ProjectDir: projectDir,
		State:      &core.State{Kind: kind},
	}

	if err := engine.Execute(core.ReleasePlan(), execCtx); err != nil {
		return err
	}

	logger.Info().Msgf("Release completed successfully. Logs can be found at %q", logFilePath)
	return nil
}
