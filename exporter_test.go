package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// flowRecorder records the order in which the share flow touches its
// collaborators.
type flowRecorder struct {
	events []string
	saved  map[string][]byte
	links  []string
}

func (f *flowRecorder) SaveReport(_ context.Context, filename string, data []byte) (string, error) {
	f.events = append(f.events, "save")
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[filename] = data
	return "/tmp/" + filename, nil
}

func (f *flowRecorder) Notify(msg string) {
	f.events = append(f.events, "notify:"+msg)
}

func (f *flowRecorder) Open(_ context.Context, url string) error {
	f.events = append(f.events, "open")
	f.links = append(f.links, url)
	return nil
}

type failingRenderer struct{}

func (failingRenderer) Render(Report) ([]byte, error) { return nil, errors.New("font missing") }
func (failingRenderer) Extension() string             { return "pdf" }

func newTestExporter(t *testing.T, rec *flowRecorder) *Exporter {
	return &Exporter{
		Renderer: PDFRenderer{},
		Saver:    rec,
		Opener:   rec,
		Notifier: rec,
		Brand:    BrandConfig{Name: "InfoAIOS Voice", Tagline: "AI-Powered Restaurant Solutions", Site: "infoaios.ai", Sender: "InfoAIOS"},
		Share:    ShareConfig{ServiceURL: DefaultShareService, CountryCode: DefaultCountryCode},
		Currency: "Rs.",
		Logger:   zaptest.NewLogger(t),
	}
}

var spiceGarden = BusinessRecord{
	RestaurantName:       "Spice Garden",
	PhoneNumber:          "98765-43210",
	AvgMissedCallsPerDay: "20",
	AvgOrderValue:        "500",
	StaffSalaryPerMonth:  "18000",
}

var standardTier = PricingTier{Name: "Standard", MonthlyPrice: 1200}

func TestExporterGenerate(t *testing.T) {
	exp := newTestExporter(t, &flowRecorder{})
	okBefore := testutil.ToFloat64(reportsGenerated.WithLabelValues("ok"))

	res, err := exp.Generate(spiceGarden, standardTier)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(res.Data, []byte("%PDF")))
	assert.Equal(t, "Spice Garden-savings-report.pdf", res.Filename)
	assert.NotEmpty(t, res.ReportID)
	assert.Equal(t, okBefore+1, testutil.ToFloat64(reportsGenerated.WithLabelValues("ok")))
}

func TestExporterGenerateRequiresName(t *testing.T) {
	exp := newTestExporter(t, &flowRecorder{})
	_, err := exp.Generate(BusinessRecord{PhoneNumber: "1"}, standardTier)
	assert.ErrorIs(t, err, ErrNoActiveRecord)
}

func TestExporterRendererFailure(t *testing.T) {
	rec := &flowRecorder{}
	exp := newTestExporter(t, rec)
	exp.Renderer = failingRenderer{}

	_, err := exp.Download(context.Background(), spiceGarden, standardTier)
	assert.ErrorIs(t, err, ErrRendererUnavailable)
	assert.Empty(t, rec.events)

	exp.Renderer = nil
	_, err = exp.Generate(spiceGarden, standardTier)
	assert.ErrorIs(t, err, ErrRendererUnavailable)
}

func TestExporterDownload(t *testing.T) {
	exp := newTestExporter(t, &flowRecorder{})
	exp.Saver = DirSaver{Dir: filepath.Join(t.TempDir(), "exports")}

	res, err := exp.Download(context.Background(), spiceGarden, standardTier)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(res.Location))
	assert.Equal(t, "Spice Garden-savings-report.pdf", filepath.Base(res.Location))

	data, err := os.ReadFile(res.Location)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestShareSavesBeforeOpening(t *testing.T) {
	rec := &flowRecorder{}
	exp := newTestExporter(t, rec)
	sharesBefore := testutil.ToFloat64(sharesOpened)

	res, err := exp.ShareViaMessage(context.Background(), spiceGarden, standardTier)
	require.NoError(t, err)

	assert.Equal(t, []string{"save", "notify:" + reportDownloadedNotice, "open"}, rec.events)
	require.Len(t, rec.links, 1)
	assert.Equal(t, res.ShareURL, rec.links[0])
	assert.Contains(t, res.ShareURL, "https://wa.me/919876543210?text=")
	assert.Contains(t, res.ShareURL, "*Spice%20Garden*")
	assert.Contains(t, rec.saved, "Spice Garden-savings-report.pdf")
	assert.Equal(t, sharesBefore+1, testutil.ToFloat64(sharesOpened))
}

func TestShareWithoutPhoneDoesNothing(t *testing.T) {
	rec := &flowRecorder{}
	exp := newTestExporter(t, rec)
	record := spiceGarden
	record.PhoneNumber = "n/a"

	_, err := exp.ShareViaMessage(context.Background(), record, standardTier)
	assert.ErrorIs(t, err, ErrPhoneMissing)
	assert.Equal(t, []string{"notify:" + ErrPhoneMissing.Message}, rec.events, "no save and no open")
}

func TestShareWithoutNameDoesNothing(t *testing.T) {
	rec := &flowRecorder{}
	exp := newTestExporter(t, rec)
	record := spiceGarden
	record.RestaurantName = ""

	_, err := exp.ShareViaMessage(context.Background(), record, standardTier)
	assert.ErrorIs(t, err, ErrNoActiveRecord)
	assert.Equal(t, []string{"notify:" + ErrNoActiveRecord.Message}, rec.events)
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "a-b-report.pdf", safeFilename("a/b-report.pdf"))
	assert.Equal(t, "..-..-x.pdf", safeFilename("../../x.pdf"))
	assert.Equal(t, "report", safeFilename(".."))
	assert.Equal(t, "report", safeFilename(""))
}
