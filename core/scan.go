package core

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/igorsobreira/titlecase"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/unascribed/FlexVer/go/flexver"
)

// IgnoreFile lists mods folder entries (gitignore syntax) that scanning skips
const IgnoreFile = ".moddirignore"

// ModDescFile is the descriptor every mod carries at its root
const ModDescFile = "modDesc.xml"

// ErrOlderVersion is reported for a mod discarded because a newer copy is already registered
var ErrOlderVersion = errors.New("newer version already registered")

var gamePrefix = regexp.MustCompile(`^FS\d{2}_`)

type modDesc struct {
	XMLName xml.Name `xml:"modDesc"`
	Version string   `xml:"version"`
	Title   struct {
		Text string `xml:",chardata"`
		En   string `xml:"en"`
	} `xml:"title"`
}

// ListModCandidates returns the mod folders and archives in a mods folder, minus ignored entries
func ListModCandidates(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	var ign *ignore.GitIgnore
	if _, err := os.Stat(filepath.Join(folder, IgnoreFile)); err == nil {
		ign, err = ignore.CompileIgnoreFile(filepath.Join(folder, IgnoreFile))
		if err != nil {
			return nil, err
		}
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !e.IsDir() && !strings.EqualFold(filepath.Ext(name), ".zip") {
			continue
		}
		if ign != nil && ign.MatchesPath(name) {
			continue
		}
		out = append(out, filepath.Join(folder, name))
	}
	return out, nil
}

// ReadModCandidate reads a mod folder or archive, returning its registry name and record
func ReadModCandidate(path string) (string, Mod, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		name = base
	}
	// Archives are mounted at a folder of the same name
	mod := Mod{
		name:      name,
		Directory: filepath.ToSlash(filepath.Join(filepath.Dir(path), name)) + "/",
		File:      filepath.ToSlash(path),
	}

	desc, err := readModDesc(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return name, mod, err
	}
	mod.Version = strings.TrimSpace(desc.Version)
	mod.Title = strings.TrimSpace(desc.Title.En)
	if len(mod.Title) == 0 {
		mod.Title = strings.TrimSpace(desc.Title.Text)
	}
	if len(mod.Title) == 0 {
		mod.Title = DeriveTitle(name)
	}
	return name, mod, nil
}

func readModDesc(path string) (modDesc, error) {
	var desc modDesc
	var r io.ReadCloser
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		zr, err := zip.OpenReader(path)
		if err != nil {
			return desc, err
		}
		defer zr.Close()
		f, err := zr.Open(ModDescFile)
		if err != nil {
			return desc, err
		}
		r = f
	} else {
		f, err := os.Open(filepath.Join(path, ModDescFile))
		if err != nil {
			return desc, err
		}
		r = f
	}
	defer r.Close()
	err := xml.NewDecoder(r).Decode(&desc)
	return desc, err
}

// DeriveTitle turns a mod name such as "FS22_MyMod_Pack" into "My Mod Pack"
func DeriveTitle(name string) string {
	name = gamePrefix.ReplaceAllString(name, "")
	title := strings.Join(camelcase.Split(name), " ")
	title = strings.ReplaceAll(strings.ReplaceAll(title, " - ", " "), " _ ", " ")
	return titlecase.Title(strings.TrimSpace(title))
}

// MergeMod adds a mod to the registry. When the name is already registered the higher version is kept.
// It returns false if the new mod was discarded.
func (reg *Registry) MergeMod(name string, mod Mod) bool {
	if existing, ok := reg.Mods[name]; ok && flexver.Compare(existing.Version, mod.Version) >= 0 {
		return false
	}
	reg.AddMod(name, mod)
	return true
}

// ScanModsFolder builds a registry from every mod in a folder. progress, if set, is called after each candidate
// with the number read so far and the total. Unreadable and discarded mods are skipped and their errors returned
// alongside the registry.
func ScanModsFolder(folder string, file string, progress func(done int, total int)) (Registry, []error, error) {
	candidates, err := ListModCandidates(folder)
	if err != nil {
		return Registry{}, nil, err
	}
	reg := NewRegistry(file)
	reg.ModsFolder = filepath.ToSlash(folder)
	var errs []error
	for i, c := range candidates {
		name, mod, err := ReadModCandidate(c)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
		} else if !reg.MergeMod(name, mod) {
			errs = append(errs, fmt.Errorf("%s: %w: %s", c, ErrOlderVersion, name))
		}
		if progress != nil {
			progress(i+1, len(candidates))
		}
	}
	return reg, errs, nil
}
