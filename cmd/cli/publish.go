package cli

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/arnavsurve/shipstep/pkg/core"
	"github.com/arnavsurve/shipstep/pkg/log"
	"github.com/arnavsurve/shipstep/pkg/log/sinks"
	"github.com/arnavsurve/shipstep/pkg/security"

	// Ensure all runner implementations are initialized
	_ "github.com/arnavsurve/shipstep/pkg/steprunner/runners"
)

type PublishCmd struct {
	Project string `help:"The project configuration file." default:"shipstep.yml"`
}

func (p *PublishCmd) Run() error {
	logRouter := log.NewRouter()
	logRouter.AddSink(sinks.NewConsoleSink())

	logger := zerolog.New(logRouter).With().Timestamp().Logger()

	defer func() {
		if err := logRouter.Close(); err != nil {
			fmt.Printf("Error during log shutdown: %v\n", err)
		}
	}()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Err(err).Msg("No .env file found, relying on existing ENV")
	}

	project, err := core.LoadProjectFromFile(p.Project)
	if err != nil {
		logger.Error().Err(err).Msgf("Failed to load project file %s", p.Project)
		return fmt.Errorf("loading project file %q: %w", p.Project, err)
	}

	projectAbsPath, err := filepath.Abs(p.Project)
	if err != nil {
		return fmt.Errorf("determining absolute path for project file %q: %w", p.Project, err)
	}
	projectDir := filepath.Dir(projectAbsPath)

	logRouter.SetRedactor(security.NewRedactor(project.Secrets))

	logger.Info().Msgf("Publishing image for project %q", project.Name)

	engine := core.NewEngine(logger)
	execCtx := core.ExecutionContext{
		Project:    project,
		ProjectDir: projectDir,
		State:      &core.State{},
	}

	if err := engine.Execute(core.PublishPlan(), execCtx); err != nil {
		return err
	}

	logger.Info().Msg("Image published successfully.")
	return nil
}
