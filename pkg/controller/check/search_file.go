package check

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// defaultPatterns are searched if neither arguments nor files are given.
var defaultPatterns = []string{ //nolint:gochecknoglobals
	".github/workflows/*.yml",
	".github/workflows/*.yaml",
	"action.yml",
	"action.yaml",
	"*/action.yml",
	"*/action.yaml",
	"*/*/action.yml",
	"*/*/action.yaml",
	"*/*/*/action.yml",
	"*/*/*/action.yaml",
}

func isYAML(p string) bool {
	ext := filepath.Ext(p)
	return ext == ".yml" || ext == ".yaml"
}

// SearchFiles returns the target files sorted by path.
// Arguments take precedence over files of the configuration,
// which take precedence over the default patterns.
func SearchFiles(logE *logrus.Entry, fs afero.Fs, args []string, cfg *config.Config) ([]string, error) {
	if len(args) != 0 {
		return searchFilesByArgs(logE, fs, args)
	}
	if cfg != nil && len(cfg.Files) > 0 {
		return searchFilesByConfig(logE, fs, cfg)
	}
	return ListWorkflows(fs)
}

// ListWorkflows returns workflow files and composite action files in the current directory.
func ListWorkflows(fs afero.Fs) ([]string, error) {
	files := []string{}
	for _, pattern := range defaultPatterns {
		matches, err := afero.Glob(fs, pattern)
		if err != nil {
			return nil, fmt.Errorf("look for workflow or composite action files using glob: %w", logerr.WithFields(err, logrus.Fields{
				"pattern": pattern,
			}))
		}
		files = append(files, matches...)
	}
	return uniqSort(files), nil
}

// searchFilesByArgs expands directories to the YAML files directly under them.
func searchFilesByArgs(logE *logrus.Entry, fs afero.Fs, args []string) ([]string, error) {
	files := []string{}
	for _, arg := range args {
		dir, err := afero.IsDir(fs, arg)
		if err != nil {
			return nil, fmt.Errorf("check if a path is a directory: %w", logerr.WithFields(err, logrus.Fields{
				"path": arg,
			}))
		}
		if !dir {
			if !isYAML(arg) {
				logE.WithField("path", arg).Debug("ignore a file because it isn't YAML")
				continue
			}
			files = append(files, arg)
			continue
		}
		entries, err := afero.ReadDir(fs, arg)
		if err != nil {
			return nil, fmt.Errorf("read a directory: %w", logerr.WithFields(err, logrus.Fields{
				"path": arg,
			}))
		}
		for _, entry := range entries {
			if entry.IsDir() || !isYAML(entry.Name()) {
				continue
			}
			files = append(files, filepath.Join(arg, entry.Name()))
		}
	}
	return uniqSort(files), nil
}

// searchFilesByConfig walks the directory of the configuration file and
// returns files matching files[].pattern.
func searchFilesByConfig(logE *logrus.Entry, fs afero.Fs, cfg *config.Config) ([]string, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	files := []string{}
	if err := afero.Walk(fs, dir, func(p string, info os.FileInfo, e error) error {
		if e != nil {
			logE.WithField("path", p).WithError(e).Debug("skip a path")
			return nil
		}
		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			logE.WithFields(logrus.Fields{
				"dir":  dir,
				"path": p,
			}).WithError(err).Debug("get a relative path")
			return nil
		}
		rel = filepath.ToSlash(rel)
		for _, file := range cfg.Files {
			if doublestar.MatchUnvalidated(file.Pattern, rel) {
				files = append(files, p)
				break
			}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("walk the directory: %w", err)
	}
	return uniqSort(files), nil
}

func uniqSort(files []string) []string {
	m := make(map[string]struct{}, len(files))
	ret := make([]string, 0, len(files))
	for _, f := range files {
		f = filepath.Clean(f)
		if _, ok := m[f]; ok {
			continue
		}
		m[f] = struct{}{}
		ret = append(ret, f)
	}
	sort.Strings(ret)
	return ret
}
