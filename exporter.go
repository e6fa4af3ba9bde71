package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ReportSaver stores a finished document under filename
type ReportSaver interface {
	SaveReport(ctx context.Context, filename string, data []byte) (location string, err error)
}

// LinkOpener opens a URL in a new browsing context
type LinkOpener interface {
	Open(ctx context.Context, url string) error
}

// Notifier shows a blocking message to the user
type Notifier interface {
	Notify(message string)
}

// DirSaver writes reports into a directory, creating it when needed
type DirSaver struct {
	Dir string
}

// SaveReport writes data to Dir/filename and returns the absolute path
func (s DirSaver) SaveReport(_ context.Context, filename string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "exports"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating exports directory: %w", err)
	}
	path := filepath.Join(dir, safeFilename(filename))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, nil
}

// safeFilename keeps a restaurant-derived filename inside its directory
func safeFilename(name string) string {
	name = strings.NewReplacer("/", "-", "\\", "-", "\x00", "").Replace(name)
	if name == "" || name == "." || name == ".." {
		return "report"
	}
	return name
}

// SystemOpener opens URLs with the desktop's default handler
type SystemOpener struct{}

func (SystemOpener) Open(_ context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("cannot open links on %s", runtime.GOOS)
	}
	return cmd.Start()
}

// LinkRecorder remembers opened links instead of launching them. The web
// host uses it so the page itself opens the link in a new tab.
type LinkRecorder struct {
	mu    sync.Mutex
	links []string
}

func (l *LinkRecorder) Open(_ context.Context, url string) error {
	l.mu.Lock()
	l.links = append(l.links, url)
	l.mu.Unlock()
	return nil
}

// Last returns the most recently opened link
func (l *LinkRecorder) Last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.links) == 0 {
		return ""
	}
	return l.links[len(l.links)-1]
}

// NoticeRecorder collects notices for callers that show them later
type NoticeRecorder struct {
	mu      sync.Mutex
	notices []string
}

func (n *NoticeRecorder) Notify(message string) {
	n.mu.Lock()
	n.notices = append(n.notices, message)
	n.mu.Unlock()
}

// Notices returns every notice so far
func (n *NoticeRecorder) Notices() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.notices))
	copy(out, n.notices)
	return out
}

// Exporter builds savings reports and runs the download and share flows
type Exporter struct {
	Renderer Renderer
	Saver    ReportSaver
	Opener   LinkOpener
	Notifier Notifier

	Brand    BrandConfig
	Share    ShareConfig
	Currency string

	Logger *zap.Logger
}

// ExportResult describes a generated report
type ExportResult struct {
	ReportID string `json:"report_id"`
	Filename string `json:"filename"`
	Location string `json:"location,omitempty"`
	Data     []byte `json:"-"`
}

// ShareResult describes a completed share
type ShareResult struct {
	ExportResult
	ShareURL string `json:"share_url"`
	Notice   string `json:"notice"`
}

func (e *Exporter) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Generate builds and renders the report without saving it
func (e *Exporter) Generate(record BusinessRecord, tier PricingTier) (ExportResult, error) {
	rep, err := BuildReport(record, tier, ComputeSavings(record, tier), e.Brand, e.Currency)
	if err != nil {
		reportsGenerated.WithLabelValues("rejected").Inc()
		return ExportResult{}, err
	}
	if e.Renderer == nil {
		reportsGenerated.WithLabelValues("failed").Inc()
		return ExportResult{}, ErrRendererUnavailable
	}
	data, err := e.Renderer.Render(rep)
	if err != nil {
		reportsGenerated.WithLabelValues("failed").Inc()
		e.logger().Error("rendering report failed", zap.String("restaurant", record.RestaurantName), zap.Error(err))
		return ExportResult{}, ErrRendererUnavailable.WithDetails("%v", err)
	}
	reportsGenerated.WithLabelValues("ok").Inc()
	return ExportResult{
		ReportID: rep.ID,
		Filename: ReportFilename(record.RestaurantName, e.Renderer.Extension()),
		Data:     data,
	}, nil
}

// Download builds the report and hands it to the saver
func (e *Exporter) Download(ctx context.Context, record BusinessRecord, tier PricingTier) (ExportResult, error) {
	res, err := e.Generate(record, tier)
	if err != nil {
		return ExportResult{}, err
	}
	if e.Saver != nil {
		loc, err := e.Saver.SaveReport(ctx, res.Filename, res.Data)
		if err != nil {
			return ExportResult{}, err
		}
		res.Location = loc
	}
	e.logger().Info("report downloaded",
		zap.String("restaurant", record.RestaurantName),
		zap.String("report_id", res.ReportID),
		zap.String("location", res.Location))
	return res, nil
}

// ShareViaMessage saves the report and then opens a pre-filled message to
// the restaurant. The report is saved before the link opens because the
// user attaches the downloaded file to that message by hand.
func (e *Exporter) ShareViaMessage(ctx context.Context, record BusinessRecord, tier PricingTier) (ShareResult, error) {
	if !record.HasName() {
		e.notify(ErrNoActiveRecord.Message)
		return ShareResult{}, ErrNoActiveRecord
	}
	digits := DigitsOnly(record.PhoneNumber)
	if digits == "" {
		e.notify(ErrPhoneMissing.Message)
		return ShareResult{}, ErrPhoneMissing
	}

	res, err := e.Download(ctx, record, tier)
	if err != nil {
		var ue *UserError
		if errors.As(err, &ue) {
			e.notify(ue.Message)
		} else {
			e.notify(ErrRendererUnavailable.Message)
		}
		return ShareResult{}, err
	}
	e.notify(reportDownloadedNotice)

	service := e.Share.ServiceURL
	if service == "" {
		service = DefaultShareService
	}
	code := e.Share.CountryCode
	if code == "" {
		code = DefaultCountryCode
	}
	link := ShareURL(service, code, digits, ShareMessage(e.Brand.Sender, record.RestaurantName))

	if e.Opener != nil {
		if err := e.Opener.Open(ctx, link); err != nil {
			return ShareResult{}, fmt.Errorf("opening share link: %w", err)
		}
	}
	sharesOpened.Inc()
	e.logger().Info("share link opened",
		zap.String("restaurant", record.RestaurantName),
		zap.String("report_id", res.ReportID))

	return ShareResult{ExportResult: res, ShareURL: link, Notice: reportDownloadedNotice}, nil
}

func (e *Exporter) notify(msg string) {
	if e.Notifier != nil {
		e.Notifier.Notify(msg)
	}
}
