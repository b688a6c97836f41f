package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/byxorna/doclib/pkg/config"
	v1 "github.com/byxorna/doclib/pkg/types/v1"
)

// Action is the host supplied custom action. doc is nil when invoked from the
// toolbar. The returned notice is shown in the status line.
type Action interface {
	Invoke(ctx context.Context, doc *v1.Document) (string, error)
}

// NewAction builds the action cfg describes. resolve turns a document path
// into an absolute URL and siteURL stands in when there is no document.
func NewAction(cfg config.CustomAction, resolve func(string) (string, error), siteURL string) (Action, error) {
	switch cfg.Kind {
	case "", config.ActionNotice:
		return &NoticeAction{Label: cfg.Label}, nil
	case config.ActionClipboard:
		return &ClipboardAction{Label: cfg.Label, Resolve: resolve, SiteURL: siteURL}, nil
	case config.ActionCommand:
		if len(cfg.Command) == 0 {
			return nil, config.ErrMissingActionCommand
		}
		return &CommandAction{Label: cfg.Label, Argv: cfg.Command, SiteURL: siteURL, Resolve: resolve}, nil
	}
	return nil, fmt.Errorf("unknown custom action kind %q", cfg.Kind)
}

// NoticeAction only acknowledges that it was invoked.
type NoticeAction struct {
	Label string
}

func (a *NoticeAction) Invoke(ctx context.Context, doc *v1.Document) (string, error) {
	if doc == nil {
		return fmt.Sprintf("%s invoked", a.Label), nil
	}
	return fmt.Sprintf("%s invoked on %s", a.Label, doc.Name), nil
}

// ClipboardAction copies the document's absolute URL, or the site URL when no
// document is given.
type ClipboardAction struct {
	Label   string
	Resolve func(string) (string, error)
	SiteURL string
	// Write defaults to the system clipboard
	Write func(string) error
}

func (a *ClipboardAction) Invoke(ctx context.Context, doc *v1.Document) (string, error) {
	link, err := documentURL(doc, a.Resolve, a.SiteURL)
	if err != nil {
		return "", err
	}
	write := a.Write
	if write == nil {
		write = clipboard.WriteAll
	}
	if err := write(link); err != nil {
		return "", fmt.Errorf("unable to copy to clipboard: %w", err)
	}
	return fmt.Sprintf("Copied %s", link), nil
}

// CommandAction runs Argv with the document described in DOCLIB_*
// environment variables. The first line of output becomes the notice.
type CommandAction struct {
	Label   string
	Argv    []string
	Resolve func(string) (string, error)
	SiteURL string
}

func (a *CommandAction) Invoke(ctx context.Context, doc *v1.Document) (string, error) {
	if len(a.Argv) == 0 {
		return "", config.ErrMissingActionCommand
	}
	cmd := exec.CommandContext(ctx, a.Argv[0], a.Argv[1:]...)
	cmd.Env = append(os.Environ(), a.Environ(doc)...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", a.Argv[0], err, firstLine(out.String()))
	}
	if line := firstLine(out.String()); line != "" {
		return line, nil
	}
	return fmt.Sprintf("%s done", a.Label), nil
}

// Environ describes doc to the configured program.
func (a *CommandAction) Environ(doc *v1.Document) []string {
	env := []string{"DOCLIB_SITE=" + a.SiteURL}
	if doc == nil {
		return env
	}
	link, err := documentURL(doc, a.Resolve, a.SiteURL)
	if err != nil {
		link = ""
	}
	return append(env,
		"DOCLIB_ID="+doc.ID.String(),
		"DOCLIB_NAME="+doc.Name,
		"DOCLIB_TITLE="+doc.Title,
		"DOCLIB_PATH="+doc.Path,
		"DOCLIB_URL="+link,
		"DOCLIB_EXTENSION="+doc.Extension,
		"DOCLIB_MODIFIED="+doc.ModifiedAt,
		"DOCLIB_MODIFIED_BY="+doc.ModifiedBy,
	)
}

func documentURL(doc *v1.Document, resolve func(string) (string, error), siteURL string) (string, error) {
	if doc == nil {
		if siteURL == "" {
			return "", ErrNoDocument
		}
		return siteURL, nil
	}
	if doc.Path == "" {
		return "", ErrEmptyPath
	}
	if resolve == nil {
		return doc.Path, nil
	}
	return resolve(doc.Path)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
