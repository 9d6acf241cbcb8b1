package passage

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Pack is a directory of passage files.
type Pack struct {
	// Name is the directory name for main packs and repo/dir for extra packs.
	Name string
	Dir  string
}

// Dirs locates lang packs on disk.
type Dirs struct {
	// Main holds packs directly, e.g. lang-packs/default.
	Main string
	// Extra holds repositories of packs, e.g. extra-packs/repo/default.
	Extra string
}

// Discover lists the packs under dirs. Missing directories yield no packs.
func Discover(dirs Dirs) ([]Pack, error) {
	var packs []Pack
	main, err := subdirs(dirs.Main)
	if err != nil {
		return nil, err
	}
	for _, name := range main {
		packs = append(packs, Pack{Name: name, Dir: filepath.Join(dirs.Main, name)})
	}

	repos, err := subdirs(dirs.Extra)
	if err != nil {
		return nil, err
	}
	for _, repo := range repos {
		repoDir := filepath.Join(dirs.Extra, repo)
		names, err := subdirs(repoDir)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			packs = append(packs, Pack{Name: repo + "/" + name, Dir: filepath.Join(repoDir, name)})
		}
	}
	return packs, nil
}

// Filter applies the player's pack lists. A blacklist wins; an empty
// whitelist or "*" keeps every pack.
func Filter(packs []Pack, whitelisted, blacklisted []string) []Pack {
	if len(blacklisted) > 0 {
		deny := toSet(blacklisted)
		return keep(packs, func(p Pack) bool { return !deny[p.Name] })
	}
	if len(whitelisted) == 0 || whitelisted[0] == "*" {
		return packs
	}
	allow := toSet(whitelisted)
	return keep(packs, func(p Pack) bool { return allow[p.Name] })
}

// Names returns the sorted pack names.
func Names(packs []Pack) []string {
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}

// Files lists passage files of a pack.
func (p Pack) Files() ([]string, error) {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || ignored(entry.Name()) || entry.Name() == ManifestName {
			continue
		}
		files = append(files, filepath.Join(p.Dir, entry.Name()))
	}
	return files, nil
}

func subdirs(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || ignored(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Lang pack checkouts carry a version marker and git metadata.
func ignored(name string) bool {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return stem == "version" || name == ".git"
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func keep(packs []Pack, fn func(Pack) bool) []Pack {
	var out []Pack
	for _, p := range packs {
		if fn(p) {
			out = append(out, p)
		}
	}
	return out
}
