package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"runtime"
)

var (
	ErrNoOpener   = errors.New("no opener configured")
	ErrNoAction   = errors.New("no custom action configured")
	ErrNoDocument = errors.New("no document selected")
	ErrEmptyPath  = errors.New("document has no path")
)

// Opener presents the document found at a server relative path.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// BrowserOpener resolves a path against the site and hands the URL to the
// platform's default handler.
type BrowserOpener struct {
	// Resolve turns a server relative path into something the platform
	// opener understands. Nil passes the path through.
	Resolve func(path string) (string, error)
	// Run starts name without waiting for it. Nil uses os/exec.
	Run func(name string, args ...string) error
	// GOOS picks the platform opener. Empty means runtime.GOOS.
	GOOS string
}

// Command is the program and arguments that open target.
func (o *BrowserOpener) Command(target string) (string, []string) {
	goos := o.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

func (o *BrowserOpener) Open(ctx context.Context, path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	target := path
	if o.Resolve != nil {
		resolved, err := o.Resolve(path)
		if err != nil {
			return fmt.Errorf("unable to resolve %s: %w", path, err)
		}
		target = resolved
	}

	name, args := o.Command(target)
	log.Printf("opening %s with %s", target, name)
	run := o.Run
	if run == nil {
		run = startDetached
	}
	if err := run(name, args...); err != nil {
		return fmt.Errorf("unable to open %s: %w", target, err)
	}
	return nil
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("%s exited: %v", name, err)
		}
	}()
	return nil
}
