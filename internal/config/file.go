package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// SetValue validates value for key and writes it into config.toml under
// home, keeping every other entry of the file as it was.
func SetValue(home string, key string, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	typed, err := typedValue(key, strings.TrimSpace(value))
	if err != nil {
		return err
	}

	path := FilePath(home)
	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	setNested(doc, key, typed)

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}

	v := New(home)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	v.Set(key, typed)
	if _, err := Decode(v); err != nil {
		return err
	}

	return writeFile(path, data)
}

func typedValue(key string, value string) (any, error) {
	switch key {
	case KeyContractDecimals:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", key, value)
		}
		return n, nil
	case KeyServeRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", key, value)
		}
		return f, nil
	default:
		return value, nil
	}
}

func readDocument(path string) (map[string]any, error) {
	doc := map[string]any{}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	return doc, nil
}

func setNested(doc map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	current := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.toml.tmp")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	return nil
}
