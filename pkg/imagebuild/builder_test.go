package imagebuild_test

import (
	"testing"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/shipstep/pkg/imagebuild"
)

func TestParsePlatforms(t *testing.T) {
	platforms, err := imagebuild.ParsePlatforms([]string{"linux/amd64", "linux/arm64", "linux/arm/v7"})
	require.NoError(t, err)

	require.Len(t, platforms, 3)
	assert.Equal(t, ocispec.Platform{OS: "linux", Architecture: "amd64"}, platforms[0])
	assert.Equal(t, ocispec.Platform{OS: "linux", Architecture: "arm", Variant: "v7"}, platforms[2])
}

func TestParsePlatforms_Invalid(t *testing.T) {
	for _, spec := range []string{"", "linux", "linux/", "/amd64", "linux/arm/v7/extra"} {
		_, err := imagebuild.ParsePlatforms([]string{spec})
		assert.Error(t, err, "platform %q should be rejected", spec)
	}
}

func TestFormatPlatforms(t *testing.T) {
	platforms, err := imagebuild.ParsePlatforms([]string{"linux/amd64", "linux/arm64", "linux/arm/v7"})
	require.NoError(t, err)

	assert.Equal(t, "linux/amd64,linux/arm64,linux/arm/v7", imagebuild.FormatPlatforms(platforms))
}

func TestImageRef(t *testing.T) {
	ref, err := imagebuild.ImageRef("opennem/opennem", "dev")
	require.NoError(t, err)
	assert.Equal(t, "opennem/opennem:dev", ref)

	ref, err = imagebuild.ImageRef("ghcr.io/opennem/opennem", "v3.12.0")
	require.NoError(t, err)
	assert.Equal(t, "ghcr.io/opennem/opennem:v3.12.0", ref)

	_, err = imagebuild.ImageRef("UPPERCASE/bad name", "dev")
	assert.Error(t, err)

	_, err = imagebuild.ImageRef("opennem/opennem", "not a tag")
	assert.Error(t, err)
}

func TestBuilder_Args(t *testing.T) {
	platforms, err := imagebuild.ParsePlatforms([]string{"linux/amd64", "linux/arm64", "linux/arm/v7"})
	require.NoError(t, err)

	b := &imagebuild.Builder{
		Image:      "opennem/opennem",
		Dockerfile: "Dockerfile",
		Context:    ".",
		Platforms:  platforms,
	}

	argv, err := b.Args([]string{"dev"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"docker", "buildx", "build",
		"--platform", "linux/amd64,linux/arm64,linux/arm/v7",
		"--file", "Dockerfile",
		"--tag", "opennem/opennem:dev",
		"--push", ".",
	}, argv)
}

func TestBuilder_Args_VersionTag(t *testing.T) {
	platforms, err := imagebuild.ParsePlatforms([]string{"linux/amd64"})
	require.NoError(t, err)

	b := &imagebuild.Builder{
		Image:      "opennem/opennem",
		Dockerfile: "Dockerfile",
		Context:    ".",
		Platforms:  platforms,
	}

	argv, err := b.Args([]string{"dev", "v3.12.0"})
	require.NoError(t, err)
	assert.Contains(t, argv, "opennem/opennem:dev")
	assert.Contains(t, argv, "opennem/opennem:v3.12.0")

	_, err = b.Args(nil)
	assert.Error(t, err)
}
