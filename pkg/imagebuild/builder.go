// Package imagebuild drives the multi-platform container image build. The
// heavy lifting belongs to the external buildx backend; this package only
// assembles a valid invocation and hands the aggregate exit status back to
// the pipeline.
package imagebuild

import (
	"context"
	"fmt"
	"strings"

	"github.com/distribution/reference"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/rs/zerolog"

	"github.com/arnavsurve/shipstep/pkg/execx"
)

// Builder configures a single build-and-push invocation.
type Builder struct {
	Image      string
	Dockerfile string
	Context    string
	Platforms  []ocispec.Platform
	Logger     zerolog.Logger

	// Dir is the directory the build command runs from.
	Dir string
}

// ParsePlatforms parses "os/arch" or "os/arch/variant" platform strings.
func ParsePlatforms(specs []string) ([]ocispec.Platform, error) {
	platforms := make([]ocispec.Platform, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, "/")
		if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid platform %q: want os/arch[/variant]", spec)
		}
		p := ocispec.Platform{OS: parts[0], Architecture: parts[1]}
		if len(parts) == 3 {
			p.Variant = parts[2]
		}
		platforms = append(platforms, p)
	}
	return platforms, nil
}

// FormatPlatforms renders platforms the way buildx expects them: a single
// comma-separated --platform value.
func FormatPlatforms(platforms []ocispec.Platform) string {
	specs := make([]string, 0, len(platforms))
	for _, p := range platforms {
		spec := p.OS + "/" + p.Architecture
		if p.Variant != "" {
			spec += "/" + p.Variant
		}
		specs = append(specs, spec)
	}
	return strings.Join(specs, ",")
}

// ImageRef validates image and tag and returns the full reference string.
func ImageRef(image, tag string) (string, error) {
	named, err := reference.ParseNormalizedNamed(image)
	if err != nil {
		return "", fmt.Errorf("invalid image name %q: %w", image, err)
	}
	tagged, err := reference.WithTag(named, tag)
	if err != nil {
		return "", fmt.Errorf("invalid image tag %q: %w", tag, err)
	}
	return reference.FamiliarString(tagged), nil
}

// Args assembles the buildx argv for the given tags. The manifest list is
// pushed straight to the registry; nothing is loaded into the local daemon.
func (b *Builder) Args(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("at least one image tag is required")
	}

	argv := []string{
		"docker", "buildx", "build",
		"--platform", FormatPlatforms(b.Platforms),
		"--file", b.Dockerfile,
	}
	for _, tag := range tags {
		ref, err := ImageRef(b.Image, tag)
		if err != nil {
			return nil, err
		}
		argv = append(argv, "--tag", ref)
	}
	argv = append(argv, "--push", b.Context)

	return argv, nil
}

// BuildAndPush runs the build, blocking until the backend exits. Each run
// overwrites whatever the pushed tags previously pointed at.
func (b *Builder) BuildAndPush(ctx context.Context, tags []string) error {
	argv, err := b.Args(tags)
	if err != nil {
		return err
	}

	b.Logger.Info().
		Str("platforms", FormatPlatforms(b.Platforms)).
		Strs("tags", tags).
		Msg("Building and pushing image manifest list")

	if _, err := execx.Run(ctx, argv, execx.WithDir(b.Dir), execx.WithLogger(b.Logger, "buildx")); err != nil {
		return fmt.Errorf("image build failed: %w", err)
	}

	return nil
}
