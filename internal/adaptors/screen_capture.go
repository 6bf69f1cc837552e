package adaptors

import (
	"context"
	"time"

	"screen_navigator/internal/pkg/errors"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	log "github.com/sirupsen/logrus"
)

// ScreenCapturer takes browser screenshots with a headless Chromium. It is a
// host-side helper for producing screenshot artifacts; the agents themselves
// only ever see the resulting image.
type ScreenCapturer struct {
	Width   int
	Height  int
	Timeout time.Duration
	log     *log.Logger
}

func NewScreenCapturer(width, height int, timeout time.Duration, log *log.Logger) *ScreenCapturer {
	return &ScreenCapturer{Width: width, Height: height, Timeout: timeout, log: log}
}

// Capture loads url and returns a PNG of the viewport.
func (c *ScreenCapturer) Capture(ctx context.Context, url string) ([]byte, error) {
	path, _ := launcher.LookPath()
	l := launcher.New().Bin(path).Headless(true)
	defer l.Cleanup()

	controlURL, err := l.Context(ctx).Launch()
	if err != nil {
		return nil, errors.Wrap(err, `failed to launch browser`)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, errors.Wrap(err, `failed to connect to browser`)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, errors.Wrap(err, `failed to open page`)
	}
	page = page.Timeout(c.Timeout)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             c.Width,
		Height:            c.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, errors.Wrap(err, `failed to set viewport`)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, errors.Wrap(err, `page did not finish loading`)
	}

	data, err := page.Screenshot(false, nil)
	if err != nil {
		return nil, errors.Wrap(err, `failed to take screenshot`)
	}
	c.log.WithContext(ctx).WithField(`url`, url).Debug(`screenshot captured`)
	return data, nil
}
