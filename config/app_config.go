package config

import "fyne.io/fyne/v2"

// SmartFramingKey is the key for the content-aware initial crop preference
const SmartFramingKey = "crop_smart_framing"

// AppConfig holds the application-wide configuration
type AppConfig struct {
	prefs fyne.Preferences
}

// NewAppConfig creates a new AppConfig instance
func NewAppConfig(p fyne.Preferences) *AppConfig {
	return &AppConfig{prefs: p}
}

// GetSmartFraming returns whether the initial crop is placed with smartcrop
func (c *AppConfig) GetSmartFraming() bool {
	return c.prefs.BoolWithFallback(SmartFramingKey, true)
}

// SetSmartFraming sets whether the initial crop is placed with smartcrop
func (c *AppConfig) SetSmartFraming(enabled bool) {
	c.prefs.SetBool(SmartFramingKey, enabled)
}

// FaceFramingKey is the key for the face-aware initial crop preference
const FaceFramingKey = "crop_face_framing"

// GetFaceFraming returns whether detected faces drive the initial crop
func (c *AppConfig) GetFaceFraming() bool {
	return c.prefs.BoolWithFallback(FaceFramingKey, false)
}

// SetFaceFraming sets whether detected faces drive the initial crop
func (c *AppConfig) SetFaceFraming(enabled bool) {
	c.prefs.SetBool(FaceFramingKey, enabled)
}

// FaceModelPathKey is the key for the pigo cascade location
const FaceModelPathKey = "crop_face_model_path"

// GetFaceModelPath returns the location of the face detection cascade
func (c *AppConfig) GetFaceModelPath() string {
	return c.prefs.StringWithFallback(FaceModelPathKey, "")
}

// SetFaceModelPath sets the location of the face detection cascade
func (c *AppConfig) SetFaceModelPath(path string) {
	c.prefs.SetString(FaceModelPathKey, path)
}

// SpinFPSKey is the key for the frame rate used by the spin animation
const SpinFPSKey = "spin_fps"

// GetSpinFPS returns the frame rate used by the spin animation
func (c *AppConfig) GetSpinFPS() int {
	fps := c.prefs.IntWithFallback(SpinFPSKey, 60)
	if fps <= 0 {
		return 60
	}
	return fps
}

// SetSpinFPS sets the frame rate used by the spin animation
func (c *AppConfig) SetSpinFPS(fps int) {
	c.prefs.SetInt(SpinFPSKey, fps)
}
