package config

const (
	WindowWidth  = 1100
	WindowHeight = 720

	// Page layout
	PagePadding   = 40
	ColumnGap     = 32
	HeaderHeight  = 56
	LineHeight    = 16
	CharWidth     = 6
	SkillRowGap   = 22
	SkillBarWidth = 160

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 28
	ButtonGap    = 8

	// Music player widget, anchored bottom-left
	PlayerX      = 24
	PlayerBottom = 24
	PlayerRadius = 20
	PlayerBars   = 3

	// Level meter
	VisualRingSize  = 8192
	SmoothingFactor = 0.6

	// Mobile layout threshold for the page and the cursor effect
	TouchBreakpoint = 768
)
