// Package stage derives the ordered stage folder chain from the naming settings.
package stage

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/aatumaykin/purgetemp/internal/config"
	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/pathutil"
)

// List holds absolute stage folder paths, newest first. Index 0 is the init
// folder that receives new files; the last index is purged on rotation.
type List []string

// Init returns the newest folder.
func (l List) Init() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}

// Last returns the oldest folder.
func (l List) Last() string {
	if len(l) == 0 {
		return ""
	}
	return l[len(l)-1]
}

// IndexOf returns the position of folder, or -1.
func (l List) IndexOf(folder string) int {
	for i, f := range l {
		if f == folder {
			return i
		}
	}
	return -1
}

// Contains reports whether folder is part of the chain, ignoring trailing
// separators. Case is ignored only on Windows.
func (l List) Contains(folder string) bool {
	folder = filepath.Clean(folder)
	for _, f := range l {
		if samePath(filepath.Clean(f), folder) {
			return true
		}
	}
	return false
}

func samePath(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// Planner computes stage folder paths.
type Planner struct {
	validator *pathutil.Validator
	resolver  pathutil.Resolver
}

// NewPlanner creates a planner. Root folders are resolved with resolver.
func NewPlanner(validator *pathutil.Validator, resolver pathutil.Resolver) *Planner {
	return &Planner{validator: validator, resolver: resolver}
}

// InitFolder returns the newest stage folder: root/prefix, or root/prefix{delim}1
// when AppendNumberOnFirstStage is set.
func (p *Planner) InitFolder(s config.Settings) (string, error) {
	root, err := p.root(s)
	if err != nil {
		return "", err
	}
	names := p.validator.Sanitize(s.StageVersionDelimiter, s.StageNamePrefix, s.StageLastNameSuffix)
	return initFolder(root, names, s), nil
}

// Folders returns the whole chain: init, root/prefix{delim}2 .. {StageVersions-1},
// then root/prefix{delim}{lastSuffix}. With one version only the init folder is
// returned. Composed names are not validated here.
func (p *Planner) Folders(s config.Settings) (List, error) {
	root, err := p.root(s)
	if err != nil {
		return nil, err
	}
	names := p.validator.Sanitize(s.StageVersionDelimiter, s.StageNamePrefix, s.StageLastNameSuffix)

	folders := List{initFolder(root, names, s)}
	if s.StageVersions <= 1 {
		return folders, nil
	}
	for i := 2; i <= s.StageVersions-1; i++ {
		folders = append(folders, filepath.Join(root, names.Prefix+names.Delimiter+strconv.Itoa(i)))
	}
	return append(folders, filepath.Join(root, names.Prefix+names.Delimiter+names.LastSuffix)), nil
}

func (p *Planner) root(s config.Settings) (string, error) {
	if strings.TrimSpace(s.StageRootFolder) == "" {
		return "", errcode.New(errcode.EmptyFolderName, "stage root folder is empty")
	}
	return p.resolver.Resolve(s.StageRootFolder), nil
}

func initFolder(root string, names pathutil.Names, s config.Settings) string {
	if !s.AppendNumberOnFirstStage || s.StageVersions <= 0 {
		return filepath.Join(root, names.Prefix)
	}
	return filepath.Join(root, names.Prefix+names.Delimiter+"1")
}
