package initcmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	templateConfig = `# yaml-language-server: $schema=https://raw.githubusercontent.com/gha-enforce-sha/gha-enforce-sha/refs/heads/main/json-schema/gha-enforce-sha.json
version: 1
# sha_length: 40
# files:
#   - pattern: .github/workflows/*.yaml
#   - pattern: "**/action.yaml"

# Actions and reusable workflows that don't have to be pinned.
exemptions:
# - name: my-org/*
# - name: actions/.*
#   name_format: regexp
#   ref: main
#   ref_format: fixed_string

# Local actions (./...) and docker:// actions are exempted by default.
# enforce_local: true
# enforce_docker: true
`
	filePermission os.FileMode = 0o644
)

// Init creates a configuration file if it doesn't exist.
func (c *Controller) Init(logE *logrus.Entry, configFilePath string) error {
	f, err := afero.Exists(c.fs, configFilePath)
	if err != nil {
		return fmt.Errorf("check if a configuration file exists: %w", err)
	}
	if f {
		logE.WithField("config_file", configFilePath).Info("the configuration file already exists")
		return nil
	}
	if err := afero.WriteFile(c.fs, configFilePath, []byte(templateConfig), filePermission); err != nil {
		return fmt.Errorf("create a configuration file: %w", err)
	}
	logE.WithField("config_file", configFilePath).Info("created a configuration file")
	return nil
}
