package runners

import (
	"context"
	"fmt"

	"github.com/arnavsurve/shipstep/pkg/imagebuild"
	"github.com/arnavsurve/shipstep/pkg/steprunner"
	"github.com/arnavsurve/shipstep/pkg/types"
)

// ImageRunner builds the multi-platform container image and pushes the
// manifest list to the registry. The mutable publish tag is overwritten on
// every run; when tag_with_version is set, the derived version is also
// applied as an immutable-style v<version> tag.
type ImageRunner struct {
	StepCtx types.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory("image", func(ctx types.ExecutionContext) (steprunner.StepRunner, error) {
		return &ImageRunner{
			StepCtx: ctx,
		}, nil
	})
}

func (ir *ImageRunner) Validate() error {
	publish := ir.StepCtx.Project.Publish

	if publish.Image == "" {
		return fmt.Errorf("image step requires an image name")
	}
	if publish.Tag == "" {
		return fmt.Errorf("image step requires a tag")
	}
	if len(publish.Platforms) == 0 {
		return fmt.Errorf("image step requires at least one platform")
	}
	if _, err := imagebuild.ParsePlatforms(publish.Platforms); err != nil {
		return err
	}
	if _, err := imagebuild.ImageRef(publish.Image, publish.Tag); err != nil {
		return err
	}

	return nil
}

func (ir *ImageRunner) Run() error {
	publish := ir.StepCtx.Project.Publish

	platforms, err := imagebuild.ParsePlatforms(publish.Platforms)
	if err != nil {
		return err
	}

	builder := &imagebuild.Builder{
		Image:      publish.Image,
		Dockerfile: publish.Dockerfile,
		Context:    publish.Context,
		Platforms:  platforms,
		Logger:     ir.StepCtx.Logger,
		Dir:        ir.StepCtx.ProjectDir,
	}

	tags := []string{publish.Tag}
	if publish.TagWithVersion {
		if ir.StepCtx.State.Version == "" {
			return fmt.Errorf("tag_with_version is set but no version was derived")
		}
		tags = append(tags, "v"+ir.StepCtx.State.Version)
	}

	return builder.BuildAndPush(context.Background(), tags)
}
