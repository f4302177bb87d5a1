package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/wayper/internal/display"
	"github.com/bnema/wayper/internal/ui"
)

// DisplayInfo represents the display information output
type DisplayInfo struct {
	Monitors []MonitorInfo `json:"monitors"`
	Error    string        `json:"error,omitempty"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	RefreshRate int     `json:"refreshRate"`
	Primary     bool    `json:"primary"`
	Connector   string  `json:"connector"`
	Scale       float64 `json:"scale"`
}

var (
	jsonOutput bool
)

var monitorsCmd = &cobra.Command{
	Use:     "monitors",
	Aliases: []string{"displays"},
	Short:   "Show monitor configuration",
	Long:    `Display information about connected monitors as reported by Hyprland or the X server.`,
	RunE:    runMonitors,
}

func init() {
	monitorsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.AddCommand(monitorsCmd)
}

func runMonitors(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.Context())
	if err != nil {
		if jsonOutput {
			// Output error as JSON
			return json.NewEncoder(cmd.OutOrStdout()).Encode(DisplayInfo{Error: err.Error()})
		}
		return err
	}

	monitors := s.detector.Displays()

	if jsonOutput {
		info := DisplayInfo{
			Monitors: make([]MonitorInfo, len(monitors)),
			Error:    s.detector.LastError(),
		}
		for i, mon := range monitors {
			info.Monitors[i] = MonitorInfo{
				ID:          mon.ID,
				Name:        mon.Name,
				Description: mon.Description,
				X:           mon.X,
				Y:           mon.Y,
				Width:       mon.Width,
				Height:      mon.Height,
				RefreshRate: mon.RefreshRate,
				Primary:     mon.Primary,
				Connector:   mon.Connector,
				Scale:       mon.Scale,
			}
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.FormatAppHeader("MONITORS", fmt.Sprintf("%d detected", len(monitors))))
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.DisplayTable(monitors))

	if code := s.detector.LastErrorCode(); code != display.None {
		msg := ui.Message{Type: ui.MessageWarning, Content: s.detector.LastError()}
		fmt.Fprintln(out, msg.View())
	}

	// Show total virtual screen size
	if len(monitors) > 1 {
		w, h := display.VirtualSize(monitors)
		fmt.Fprintln(out, ui.SubtleStyle.Render(fmt.Sprintf("Total virtual screen: %dx%d", w, h)))
	}
	return nil
}
