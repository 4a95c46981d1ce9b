package config

// Config is the top-level structure returned after loading the YAML configuration.
// Every field has a built-in default, so a run without --config works out of the box.
type Config struct {
	Tools   Tools   `yaml:"tools"`
	Sources Sources `yaml:"sources"`
	Install Install `yaml:"install"`
	Project Project `yaml:"project"`
	Policy  Policy  `yaml:"policy"`
}

// Tools holds version pins and the prerequisite package sets per package manager.
// - CDKVersion: exact version the deploy-tool CLI must report.
// - NVMVersion: release tag of the nvm install script.
// - Prerequisites: packages installed by the package-manager bootstrap, keyed by apt/yum/brew.
type Tools struct {
	CDKVersion    string              `yaml:"cdk_version"`
	NVMVersion    string              `yaml:"nvm_version"`
	Prerequisites map[string][]string `yaml:"prerequisites"`
}

// Sources are the base URLs vendor artifacts are fetched from.
// The *Archive fields name the downloaded archive below the base URL; {os}
// and {arch} are expanded, and the extension picks the extractor, so a
// mirror may repackage an artifact as .tar.xz, .tar.bz2 or .7z.
type Sources struct {
	AWSCLI        string `yaml:"awscli"`
	AWSCLIArchive string `yaml:"awscli_archive"`
	Eksctl        string `yaml:"eksctl"`
	EksctlArchive string `yaml:"eksctl_archive"`
	Kubectl       string `yaml:"kubectl"`
	NVM           string `yaml:"nvm"`
	Docker        string `yaml:"docker"`
}

// Install controls where binaries land and where artifacts are staged.
type Install struct {
	BinDir  string `yaml:"bin_dir"`
	TempDir string `yaml:"temp_dir"` // empty means os.TempDir()
}

// Project describes the CDK project bootstrapped at the end of the run.
type Project struct {
	ConfigFile string `yaml:"config_file"` // relative to the project directory
}

// Policy holds strictness switches for behaviour that is best-effort by default.
type Policy struct {
	// Strict turns the macOS Docker deferral and the nvm degrade into fatal errors.
	Strict bool `yaml:"strict"`
}

// Env is the part of the configuration that comes from environment variables.
type Env struct {
	ProjectDir  string
	ProjectName string
}
