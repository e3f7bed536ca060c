package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener opens list page links in the system browser
type Opener struct {
	goos string
}

// NewOpener creates an opener for the running operating system
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS}
}

// Open validates link and hands it to the platform opener without waiting
// for the browser to exit
func (o *Opener) Open(link string) error {
	if err := Validate(link); err != nil {
		return err
	}
	cmd, err := o.Command(link)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	go cmd.Wait()
	return nil
}

// Validate accepts absolute http and https links only
func Validate(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid link: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: only http and https links are opened", link)
	}
	if u.Host == "" {
		return fmt.Errorf("refusing to open %q: missing host", link)
	}
	return nil
}

// Command returns the exec.Cmd that opens link on this platform
func (o *Opener) Command(link string) (*exec.Cmd, error) {
	switch o.goos {
	case "darwin":
		return exec.Command("open", link), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", link), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", link), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}
