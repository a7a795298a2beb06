// Package appinfo holds the build information of the kestra binary.
package appinfo

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppName is the name reported by the version command and the User-Agent.
const AppName = "kestractl"

// Set at build time:
//
//	go build -ldflags '-X github.com/wuxler/kestractl/pkg/appinfo.version=v1.0.0'
var (
	version   = "dev"
	gitCommit = ""
	// buildDate output from `date -u +'%Y-%m-%dT%H:%M:%SZ'`
	buildDate = ""
)

// Version records the build information of the binary.
type Version struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit,omitempty" yaml:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty" yaml:"build_date,omitempty"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// GetVersion returns the Version of the binary.
func GetVersion() Version {
	return Version{
		Version:   version,
		GitCommit: gitCommit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// ShortVersion returns the version with the abbreviated commit if known.
func ShortVersion() string {
	if len(gitCommit) > 7 {
		return version + "-" + gitCommit[:8]
	}
	return version
}

// Format is an output format of [Write].
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Write writes v to w. Text output is the one-line form when short is set.
func Write(w io.Writer, v Version, format Format, short bool) error {
	switch Format(strings.ToLower(string(format))) {
	case FormatYAML, "yml":
		return yaml.NewEncoder(w).Encode(v)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatText, "":
	default:
		return fmt.Errorf("unsupported version format %q", format)
	}
	if short {
		_, err := fmt.Fprintln(w, v.Version)
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s\n", AppName, v.Version)
	if err != nil {
		return err
	}
	if v.GitCommit != "" {
		fmt.Fprintf(w, "  Commit     : %s\n", v.GitCommit)
	}
	if v.BuildDate != "" {
		fmt.Fprintf(w, "  BuildDate  : %s\n", v.BuildDate)
	}
	_, err = fmt.Fprintf(w, "  GoVersion  : %s\n  Platform   : %s\n", v.GoVersion, v.Platform)
	return err
}
