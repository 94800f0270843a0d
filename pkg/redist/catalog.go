// pkg/redist/catalog.go - expected Visual C++ runtime packages for a WAMP stack.

package redist

import (
	"strconv"
	"strings"
)

// ID names one redistributable, e.g. "VC++2015_x64". It is what the user sees.
type ID string

// Arch is the target architecture of a redistributable.
type Arch string

const (
	ArchX86 Arch = "x86"
	ArchX64 Arch = "x64"
)

// Package describes how to detect and install one redistributable.
type Package struct {
	ID   ID   `yaml:"ID"`
	Year int  `yaml:"Year"`
	Arch Arch `yaml:"Arch"`
	// Match lists substrings that must all appear in an Uninstall DisplayName.
	Match []string `yaml:"Match"`
	// RuntimeKey is the VisualStudio runtime key under HKLM, read in the
	// registry view of Arch.
	RuntimeKey string   `yaml:"RuntimeKey,omitempty"`
	MinVersion string   `yaml:"MinVersion,omitempty"`
	Installer  string   `yaml:"Installer"`
	Args       []string `yaml:"Args,omitempty"`
	SHA256     string   `yaml:"SHA256,omitempty"`
}

// DefaultCatalog returns the redistributables that the Apache, PHP and MySQL
// builds shipped with WampServer link against.
func DefaultCatalog() []Package {
	var out []Package
	for _, arch := range []Arch{ArchX86, ArchX64} {
		a := string(arch)
		out = append(out,
			vc(2008, arch, "", "vcredist_2008_"+a+".exe", "/q"),
			vc(2010, arch, `SOFTWARE\Microsoft\VisualStudio\10.0\VC\VCRedist\`+a, "vcredist_2010_"+a+".exe", "/q", "/norestart"),
			vc(2012, arch, `SOFTWARE\Microsoft\VisualStudio\11.0\VC\Runtimes\`+a, "vcredist_2012_"+a+".exe"),
			vc(2013, arch, `SOFTWARE\Microsoft\VisualStudio\12.0\VC\Runtimes\`+a, "vcredist_2013_"+a+".exe"),
		)
		latest := vc(2015, arch, `SOFTWARE\Microsoft\VisualStudio\14.0\VC\Runtimes\`+a, "vc_redist."+a+".exe")
		latest.MinVersion = "14.0.24215"
		out = append(out, latest)
	}
	return out
}

func vc(year int, arch Arch, runtimeKey, installer string, args ...string) Package {
	y := strconv.Itoa(year)
	return Package{
		ID:         ID("VC++" + y + "_" + string(arch)),
		Year:       year,
		Arch:       arch,
		Match:      []string{"Visual C++ " + y, "Redistributable", string(arch)},
		RuntimeKey: runtimeKey,
		Installer:  installer,
		Args:       args,
	}
}

// InstallArgs returns the configured installer arguments or the silent
// defaults for the package's toolset year.
func (p Package) InstallArgs() []string {
	if len(p.Args) > 0 {
		return p.Args
	}
	return silentArgs(p.Year)
}

// Matches reports whether an Uninstall DisplayName belongs to this package.
func (p Package) Matches(displayName string) bool {
	if len(p.Match) == 0 {
		return false
	}
	name := strings.ToLower(displayName)
	for _, m := range p.Match {
		if !strings.Contains(name, strings.ToLower(m)) {
			return false
		}
	}
	return true
}

// Lookup finds a package by ID.
func Lookup(catalog []Package, id ID) (Package, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

func silentArgs(year int) []string {
	if year >= 2012 {
		return []string{"/install", "/quiet", "/norestart"}
	}
	return []string{"/q", "/norestart"}
}
