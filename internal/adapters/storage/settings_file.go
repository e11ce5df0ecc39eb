package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
	"gopkg.in/ini.v1"
)

// SettingsFileName is the name of the settings file kept next to the binary.
const SettingsFileName = "pomodoro_settings.ini"

const (
	sectionSettings = "Settings"
	keyWorkMinutes  = "WorkMinutes"
	keyBreakMinutes = "BreakMinutes"
)

func init() {
	// Write key=value without padding around the delimiter.
	ini.PrettyFormat = false
}

// SettingsFile implements ports.SettingsRepository on an INI file with a
// [Settings] section. Other sections and comments in the file are kept
// when it is saved.
type SettingsFile struct {
	path string
}

// Ensure SettingsFile implements ports.SettingsRepository.
var _ ports.SettingsRepository = (*SettingsFile)(nil)

// NewSettingsFile creates a repository for the file at path.
func NewSettingsFile(path string) *SettingsFile {
	return &SettingsFile{path: path}
}

// DefaultSettingsPath returns the settings file location next to the
// running executable.
func DefaultSettingsPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), SettingsFileName), nil
}

// Path returns the location of the settings file.
func (f *SettingsFile) Path() string {
	return f.path
}

// Load reads the stored minute values without validating them.
// Section and key names match case-insensitively. A missing file, section
// or key yields the default for that value; a value that does not start
// with a number reads as 0.
func (f *SettingsFile) Load(ctx context.Context) (ports.RawSettings, error) {
	defaults := ports.RawSettings{
		WorkMinutes:  domain.DefaultWorkMinutes,
		BreakMinutes: domain.DefaultBreakMinutes,
	}
	if err := ctx.Err(); err != nil {
		return defaults, err
	}

	file, err := f.open(ini.LoadOptions{Insensitive: true})
	if err != nil {
		return defaults, err
	}
	if file == nil {
		return defaults, nil
	}

	section, err := file.GetSection(strings.ToLower(sectionSettings))
	if err != nil {
		return defaults, nil
	}

	raw := defaults
	if key, err := section.GetKey(strings.ToLower(keyWorkMinutes)); err == nil {
		raw.WorkMinutes = parseProfileInt(key.String())
	}
	if key, err := section.GetKey(strings.ToLower(keyBreakMinutes)); err == nil {
		raw.BreakMinutes = parseProfileInt(key.String())
	}
	return raw, nil
}

// Save writes d into the [Settings] section, replacing the file
// atomically. Everything else in an existing file is carried over; a file
// that cannot be parsed is replaced.
func (f *SettingsFile) Save(ctx context.Context, d domain.Durations) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := f.open(ini.LoadOptions{})
	if err != nil || file == nil {
		file = ini.Empty()
	}

	section := findSection(file, sectionSettings)
	if section == nil {
		if section, err = file.NewSection(sectionSettings); err != nil {
			return &domain.PersistenceError{Op: "encode", Path: f.path, Err: err}
		}
	}
	if err := setKey(section, keyWorkMinutes, d.WorkMinutes()); err != nil {
		return &domain.PersistenceError{Op: "encode", Path: f.path, Err: err}
	}
	if err := setKey(section, keyBreakMinutes, d.BreakMinutes()); err != nil {
		return &domain.PersistenceError{Op: "encode", Path: f.path, Err: err}
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.PersistenceError{Op: "write", Path: f.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".pomodoro_settings-*")
	if err != nil {
		return &domain.PersistenceError{Op: "write", Path: f.path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := file.WriteTo(tmp); err != nil {
		tmp.Close()
		return &domain.PersistenceError{Op: "write", Path: f.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &domain.PersistenceError{Op: "write", Path: f.path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return &domain.PersistenceError{Op: "write", Path: f.path, Err: err}
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return &domain.PersistenceError{Op: "write", Path: f.path, Err: err}
	}
	return nil
}

// open parses the settings file. It returns nil and no error when the file
// does not exist.
func (f *SettingsFile) open(opts ini.LoadOptions) (*ini.File, error) {
	if _, err := os.Stat(f.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.PersistenceError{Op: "read", Path: f.path, Err: err}
	}

	opts.SkipUnrecognizableLines = true
	opts.IgnoreContinuation = true
	file, err := ini.LoadSources(opts, f.path)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "read", Path: f.path, Err: err}
	}
	return file, nil
}

// findSection returns the section called name, ignoring case.
func findSection(file *ini.File, name string) *ini.Section {
	for _, section := range file.Sections() {
		if strings.EqualFold(section.Name(), name) {
			return section
		}
	}
	return nil
}

// setKey updates the key called name, ignoring case, or appends it.
func setKey(section *ini.Section, name string, value int) error {
	for _, key := range section.Keys() {
		if strings.EqualFold(key.Name(), name) {
			key.SetValue(strconv.Itoa(value))
			return nil
		}
	}
	_, err := section.NewKey(name, strconv.Itoa(value))
	return err
}

// parseProfileInt reads the leading decimal integer of s the way Windows
// profile files are read: surrounding space is ignored, digits after the
// number are dropped, and a value with no digits is 0.
func parseProfileInt(s string) int {
	s = strings.TrimSpace(s)
	sign := 1
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return sign * n
}
