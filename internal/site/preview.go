package site

import (
	"context"
	"strings"

	"github.com/goliatone/go-docs/internal/markup"
	"github.com/goliatone/go-docs/internal/pages"
)

// Device is an authoring preview viewport.
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceTablet  Device = "tablet"
	DeviceMobile  Device = "mobile"
)

var viewportWidths = map[Device]int{
	DeviceDesktop: 1280,
	DeviceTablet:  768,
	DeviceMobile:  375,
}

// Width returns the viewport width in pixels, or zero for unknown devices.
func (d Device) Width() int {
	return viewportWidths[d]
}

// ParseDevice normalises value; blank means desktop.
func ParseDevice(value string) (Device, error) {
	device := Device(strings.ToLower(strings.TrimSpace(value)))
	if device == "" {
		return DeviceDesktop, nil
	}
	if _, ok := viewportWidths[device]; !ok {
		return "", pages.NewValidationFailure("device", ErrUnknownDevice)
	}
	return device, nil
}

// Preview is draft content rendered for a device.
type Preview struct {
	Device   Device           `json:"device"`
	Width    int              `json:"width"`
	HTML     string           `json:"html"`
	Headings []markup.Heading `json:"headings"`
}

// Preview renders content that need not be saved or published.
func (s *service) Preview(_ context.Context, content string, device Device) (*Preview, error) {
	device, err := ParseDevice(string(device))
	if err != nil {
		return nil, err
	}
	rendered := s.pipeline.Process(content)
	s.logger.Debug("site.preview.rendered", "device", device, "headings", len(rendered.Headings))
	return &Preview{
		Device:   device,
		Width:    device.Width(),
		HTML:     rendered.HTML,
		Headings: rendered.Headings,
	}, nil
}
