package types

// Step is one entry in a release plan. ID is the human-readable label used
// in logs; Uses selects the registered runner that executes it.
type Step struct {
	ID   string
	Uses string
}

// State carries the mutable run state shared by every step in a plan.
// Version is empty until the derive step records the canonical semver
// string; steps that need it must run after derive.
type State struct {
	// Kind is the requested version bump kind (e.g. "patch", "prerelease").
	Kind string

	// Version is the canonical bare semver string for this run, without
	// any packaging-namespace prefix or leading "v".
	Version string
}

// Project is the parsed shipstep.yml project configuration.
type Project struct {
	Name      string         `yaml:"name"`
	Metadata  string         `yaml:"metadata"`
	Lockfile  string         `yaml:"lockfile"`
	Manifests ManifestConfig `yaml:"manifests"`
	Verify    VerifyConfig   `yaml:"verify"`
	VCS       VCSConfig      `yaml:"vcs"`
	BuildDir  string         `yaml:"build_dir"`
	Publish   PublishConfig  `yaml:"publish"`

	// Secrets lists environment variable names whose values must never
	// appear in log output.
	Secrets []string `yaml:"secrets,omitempty"`
}

// ManifestConfig holds the output paths for the generated dependency
// manifests and the extra feature sets enabled for the runtime manifest.
type ManifestConfig struct {
	Runtime string   `yaml:"runtime"`
	Dev     string   `yaml:"dev"`
	Extras  []string `yaml:"extras,omitempty"`
}

// VerifyConfig holds the argv for each verification pass. Test and Lint
// are fatal; Style is reporting-only and never aborts the run.
type VerifyConfig struct {
	Test  []string `yaml:"test"`
	Lint  []string `yaml:"lint"`
	Style []string `yaml:"style,omitempty"`
}

// VCSConfig configures the version-control steps.
type VCSConfig struct {
	Remote string    `yaml:"remote"`
	Author Signature `yaml:"author"`

	// UsernameEnv/PasswordEnv name the environment variables holding
	// HTTP basic auth credentials for push. Both empty means no auth.
	UsernameEnv string `yaml:"username_env,omitempty"`
	PasswordEnv string `yaml:"password_env,omitempty"`
}

// Signature identifies the commit author and tagger.
type Signature struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// PublishConfig configures the container image publish flow.
type PublishConfig struct {
	Image      string   `yaml:"image"`
	Tag        string   `yaml:"tag"`
	Platforms  []string `yaml:"platforms"`
	Dockerfile string   `yaml:"dockerfile"`
	Context    string   `yaml:"context"`

	// TagWithVersion additionally tags the image v<version>. The default
	// publishes only the mutable dev tag.
	TagWithVersion bool `yaml:"tag_with_version,omitempty"`
}
