package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/bnema/wayper/internal/display"
	"github.com/bnema/wayper/internal/logger"
	"github.com/bnema/wayper/internal/wallpaper"
)

// browseOption is the image value that opens the file dialog instead.
const browseOption = "\x00browse"

// ErrNoImage is returned when the user closed the file dialog without choosing.
var ErrNoImage = errors.New("no image selected")

// FileBrowser opens a file chooser. It returns "" on cancel.
type FileBrowser interface {
	Open(ctx context.Context, title, defaultPath string, filters []string) string
}

// Selection is the outcome of a pick.
type Selection struct {
	DisplayID int
	Mode      wallpaper.Mode
	Path      string
}

// Picker asks for a display, a mode and an image using huh forms.
type Picker struct {
	Displays    []display.Display
	Images      []string
	DefaultMode wallpaper.Mode
	LastPath    string
	Browser     FileBrowser

	// runForm is replaced in tests
	runForm func(ctx context.Context, form *huh.Form) error
}

// NewPicker creates a picker over the given displays and library images.
func NewPicker(displays []display.Display, images []string, browser FileBrowser) *Picker {
	return &Picker{
		Displays:    displays,
		Images:      images,
		DefaultMode: wallpaper.DefaultMode,
		Browser:     browser,
		runForm: func(ctx context.Context, form *huh.Form) error {
			return form.RunWithContext(ctx)
		},
	}
}

// Run shows the form and resolves the chosen image.
func (p *Picker) Run(ctx context.Context) (Selection, error) {
	if len(p.Displays) == 0 {
		return Selection{}, fmt.Errorf("no displays available")
	}

	sel := Selection{DisplayID: p.Displays[0].ID, Mode: p.DefaultMode}
	if len(p.Images) > 0 {
		sel.Path = p.Images[0]
	} else {
		sel.Path = browseOption
	}

	var fields []huh.Field
	// If only one display, use it automatically
	if len(p.Displays) == 1 {
		logger.Infof("Auto-selected display: %s", p.Displays[0].Name)
	} else {
		fields = append(fields, huh.NewSelect[int]().
			Title("Select Display").
			Description("Choose the display to set the wallpaper on").
			Options(displayOptions(p.Displays)...).
			Value(&sel.DisplayID))
	}
	fields = append(fields,
		huh.NewSelect[wallpaper.Mode]().
			Title("Wallpaper Mode").
			Options(modeOptions()...).
			Value(&sel.Mode),
		huh.NewSelect[string]().
			Title("Select Image").
			Description("Pick from your wallpaper directories or browse").
			Options(imageOptions(p.Images)...).
			Value(&sel.Path),
	)

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := p.runForm(ctx, form); err != nil {
		return Selection{}, fmt.Errorf("selection cancelled: %w", err)
	}

	return p.resolve(ctx, sel)
}

// resolve replaces the browse entry with the file dialog result.
func (p *Picker) resolve(ctx context.Context, sel Selection) (Selection, error) {
	if sel.Path != browseOption {
		return sel, nil
	}
	if p.Browser == nil {
		return Selection{}, ErrNoImage
	}

	path := p.Browser.Open(ctx, "Select wallpaper image", p.LastPath, wallpaper.SupportedFormats())
	if path == "" {
		return Selection{}, ErrNoImage
	}
	sel.Path = path
	return sel, nil
}

func displayOptions(displays []display.Display) []huh.Option[int] {
	options := make([]huh.Option[int], len(displays))
	for i, d := range displays {
		label := fmt.Sprintf("%d: %s (%dx%d@%dHz)", d.ID, d.Name, d.Width, d.Height, d.RefreshRate)
		if d.Primary {
			label += " primary"
		}
		options[i] = huh.NewOption(label, d.ID)
	}
	return options
}

func modeOptions() []huh.Option[wallpaper.Mode] {
	options := make([]huh.Option[wallpaper.Mode], len(wallpaper.Modes))
	for i, m := range wallpaper.Modes {
		options[i] = huh.NewOption(m.String(), m)
	}
	return options
}

func imageOptions(images []string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(images)+1)
	for _, img := range images {
		options = append(options, huh.NewOption(filepath.Base(img), img))
	}
	return append(options, huh.NewOption("Browse…", browseOption))
}
