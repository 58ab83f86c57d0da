package asset

import (
	"embed"
	"fmt"

	"github.com/ouaf/widgets/util/log"
)

// DefaultTuning is the name of the built-in tuning file.
const DefaultTuning = "default_tuning.yaml"

//go:embed text/*
var assets embed.FS

// Manager manages the loading of embedded assets.
type Manager struct{}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{}
}

// GetText loads and returns embedded text asset by name.
func (am *Manager) GetText(name string) (string, error) {
	textBytes, err := am.GetRawText(name)
	if err != nil {
		return "", err
	}
	return string(textBytes), nil
}

// GetRawText loads and returns the raw bytes of an embedded text asset by name.
func (am *Manager) GetRawText(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("text asset name is empty")
	}
	textBytes, err := assets.ReadFile("text/" + name)
	if err != nil {
		log.Println("Error loading text:", err)
		return nil, err
	}
	return textBytes, nil
}
