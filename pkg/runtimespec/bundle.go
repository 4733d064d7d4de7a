package runtimespec

// Bundle is a directory containing config.json and a root filesystem that
// together describe a container to a runtime.
type Bundle struct {
	// Path is the absolute path to the bundle directory.
	Path string
	// Config is the parsed contents of config.json.
	Config Config
}

// Config is the runtime bundle's config.json document.
type Config struct {
	OCIVersion  string            `json:"ociVersion"`
	Root        *Root             `json:"root,omitempty"`
	Mounts      []Mount           `json:"mounts,omitempty"`
	Process     *Process          `json:"process,omitempty"`
	Hostname    string            `json:"hostname,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// Root describes the container's root filesystem.
type Root struct {
	Path     string `json:"path"`
	Readonly bool   `json:"readonly,omitempty"`
}

// Mount describes one filesystem mount inside the container.
type Mount struct {
	Destination string   `json:"destination"`
	Type        string   `json:"type,omitempty"`
	Source      string   `json:"source,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// Process describes the container's entrypoint process and its POSIX
// execution environment.
type Process struct {
	Terminal        bool     `json:"terminal,omitempty"`
	ConsoleSize     *Box     `json:"consoleSize,omitempty"`
	CWD             string   `json:"cwd"`
	Env             []string `json:"env,omitempty"`
	Args            []string `json:"args"`
	User            User     `json:"user"`
	Rlimits         []Rlimit `json:"rlimits,omitempty"`
	Capabilities    *LinuxCapabilities `json:"capabilities,omitempty"`
	ApparmorProfile string   `json:"apparmorProfile,omitempty"`
	OOMScoreAdj     *int     `json:"oomScoreAdj,omitempty"`
	SelinuxLabel    string   `json:"selinuxLabel,omitempty"`
}

// Box is a terminal size in characters.
type Box struct {
	Height uint `json:"height"`
	Width  uint `json:"width"`
}

// User is the tagged union over POSIX and Windows process identity: the
// POSIX fields are used when UID/GID are set; Username is used on Windows.
type User struct {
	UID            *uint32  `json:"uid,omitempty"`
	GID            *uint32  `json:"gid,omitempty"`
	AdditionalGids []uint32 `json:"additionalGids,omitempty"`
	Username       string   `json:"username,omitempty"`
}

// Rlimit sets one POSIX resource limit for the container process.
type Rlimit struct {
	Type string `json:"type"`
	Hard uint64 `json:"hard"`
	Soft uint64 `json:"soft"`
}

// LinuxCapabilities lists the Linux capability sets granted to the process.
type LinuxCapabilities struct {
	Bounding    []string `json:"bounding,omitempty"`
	Effective   []string `json:"effective,omitempty"`
	Inheritable []string `json:"inheritable,omitempty"`
	Permitted   []string `json:"permitted,omitempty"`
	Ambient     []string `json:"ambient,omitempty"`
}
