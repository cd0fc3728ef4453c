package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// PrimaryMonitor returns the RandR primary output. Without one it falls back
// to the first active CRTC, then to the whole root window.
func (c *Connection) PrimaryMonitor() (*Monitor, error) {
	if mon, err := c.randrPrimary(); err == nil && mon != nil {
		return mon, nil
	}

	if monitors, err := c.GetMonitors(); err == nil && len(monitors) > 0 {
		return &monitors[0], nil
	}

	screen := c.XUtil.Screen()
	if screen == nil || screen.WidthInPixels == 0 || screen.HeightInPixels == 0 {
		return nil, fmt.Errorf("no monitors found")
	}
	return &Monitor{
		ID:     0,
		Name:   "root",
		Width:  int(screen.WidthInPixels),
		Height: int(screen.HeightInPixels),
	}, nil
}

func (c *Connection) randrPrimary() (*Monitor, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	primary, err := randr.GetOutputPrimary(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get primary output: %w", err)
	}
	if primary.Output == 0 {
		return nil, fmt.Errorf("no primary output set")
	}

	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	outputInfo, err := randr.GetOutputInfo(conn, primary.Output, resources.ConfigTimestamp).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get primary output info: %w", err)
	}
	if outputInfo.Crtc == 0 {
		return nil, fmt.Errorf("primary output %s is disabled", string(outputInfo.Name))
	}

	crtcInfo, err := randr.GetCrtcInfo(conn, outputInfo.Crtc, resources.ConfigTimestamp).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get primary crtc info: %w", err)
	}

	id := 0
	for i, crtc := range resources.Crtcs {
		if crtc == outputInfo.Crtc {
			id = i
			break
		}
	}

	return &Monitor{
		ID:     id,
		Name:   string(outputInfo.Name),
		X:      int(crtcInfo.X),
		Y:      int(crtcInfo.Y),
		Width:  int(crtcInfo.Width),
		Height: int(crtcInfo.Height),
	}, nil
}
