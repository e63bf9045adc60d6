// Package config provides configuration management for the SSHFS mount monitor.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"sshfs-monitor/internal/model"
)

// yamlHostEntry is one host in the YAML inventory format.
type yamlHostEntry struct {
	Address    string `yaml:"address"`
	User       string `yaml:"user"`
	Port       int    `yaml:"port"`
	RemotePath string `yaml:"remote_path"`
	MountPoint string `yaml:"mount_point"`
}

// yamlInventory is the root of the YAML inventory format.
type yamlInventory struct {
	Hosts []yamlHostEntry `yaml:"hosts"`
}

// LoadInventory reads the host inventory from the given path and returns the
// ordered, validated host registry. Two formats are supported, selected by
// file extension: a YAML inventory (.yaml/.yml) and the plain-text format
// (one host per line: "[user@]address [mount-point] [port] [remote-path]").
// Relative mount points are resolved under baseDir.
func LoadInventory(path string, baseDir string) ([]model.HostEntry, error) {
	if path == "" {
		return nil, fmt.Errorf("inventory file path is required")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("inventory file not found: %s", path)
	}

	var entries []model.HostEntry
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		entries, err = loadYAMLInventory(path, baseDir)
	default:
		entries, err = loadTextInventory(path, baseDir)
	}
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no hosts found in %s", path)
	}

	return entries, nil
}

// loadYAMLInventory parses the YAML inventory format.
func loadYAMLInventory(path string, baseDir string) ([]model.HostEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}

	var inv yamlInventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse inventory file: %w", err)
	}

	entries := make([]model.HostEntry, 0, len(inv.Hosts))
	for i, h := range inv.Hosts {
		if h.Address == "" {
			return nil, fmt.Errorf("host at index %d has no address", i)
		}

		entry := model.HostEntry{
			Address:    h.Address,
			User:       h.User,
			Port:       h.Port,
			RemotePath: h.RemotePath,
			MountPoint: h.MountPoint,
		}
		applyEntryDefaults(&entry, len(entries), baseDir)
		entries = append(entries, entry)
	}

	return entries, nil
}

// loadTextInventory parses the plain-text inventory format. Blank lines and
// lines starting with '#' are ignored.
func loadTextInventory(path string, baseDir string) ([]model.HostEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory file: %w", err)
	}
	defer file.Close()

	return parseTextInventory(file, baseDir)
}

// parseTextInventory parses text inventory lines from r.
// Line format: "[user@]address [mount-point] [port] [remote-path]".
func parseTextInventory(r io.Reader, baseDir string) ([]model.HostEntry, error) {
	var entries []model.HostEntry
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)

		entry := model.HostEntry{}

		// Field 1: [user@]address
		if at := strings.IndexByte(fields[0], '@'); at > 0 {
			entry.User = fields[0][:at]
			entry.Address = fields[0][at+1:]
		} else {
			entry.Address = fields[0]
		}
		if entry.Address == "" {
			return nil, fmt.Errorf("invalid inventory line %q: empty address", line)
		}

		// Field 2: mount point (optional, ordinal default applied below)
		if len(fields) > 1 {
			entry.MountPoint = fields[1]
		}

		// Field 3: port (optional; non-numeric values fall back to the default)
		if len(fields) > 2 {
			if port, err := strconv.Atoi(fields[2]); err == nil {
				entry.Port = port
			}
		}

		// Field 4: remote path (optional)
		if len(fields) > 3 {
			entry.RemotePath = fields[3]
		}

		applyEntryDefaults(&entry, len(entries), baseDir)
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	return entries, nil
}

// applyEntryDefaults fills unset fields and resolves the mount point to an
// absolute path. ordinal is the zero-based position of the entry, used to
// derive the default mount point name.
func applyEntryDefaults(entry *model.HostEntry, ordinal int, baseDir string) {
	if entry.User == "" {
		entry.User = model.DefaultUser
	}
	if entry.Port == 0 {
		entry.Port = model.DefaultPort
	}
	if entry.RemotePath == "" {
		entry.RemotePath = model.DefaultRemotePath
	}
	if entry.MountPoint == "" {
		entry.MountPoint = fmt.Sprintf("host%d", ordinal+1)
	}
	if !filepath.IsAbs(entry.MountPoint) {
		entry.MountPoint = filepath.Join(baseDir, entry.MountPoint)
	}
}
