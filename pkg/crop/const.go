package crop

// Page hooks read by the pipeline.
const (
	AspectAttr   = "crop-aspect"                 // "<number>/<number>"
	SizeAttr     = "crop-size"                   // "<int>x<int>"
	ScopeClass   = "js-crop-scope"               // Marks the container governing an input
	PreviewClass = "media_form__preview_content" // Image showing the cropped result
	CloseAttr    = "data-close"                  // Any modal control that cancels
)

// Modal element ids.
const (
	ModalID   = "cropperModal"
	TargetID  = "cropperTarget"
	ConfirmID = "cropperConfirm"
)

// Defaults applied when attributes are absent or malformed.
const (
	DefaultAspect       = "16/9"
	DefaultSize         = "1600x900"
	DefaultOutputWidth  = 1600
	DefaultOutputHeight = 900
	DefaultAspectRatio  = 16.0 / 9.0
)

// Output encodings.
const (
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"

	DefaultJPEGQuality = 0.92
	DefaultPNGQuality  = 0.96
)
