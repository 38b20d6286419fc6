package logger

import (
	"context"
	"os"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/diode"
)

const (
	defaultDataDogTimeout = 5 * time.Second
	dataDogSource         = "go"

	// dataDogBufferSize events wait for submission; older ones are dropped
	// when the intake can not keep up.
	dataDogBufferSize   = 1000
	dataDogPollInterval = 10 * time.Millisecond
)

// ErrDataDogAPIKeyIsEmpty is returned if DataDog is enabled without an api key.
var ErrDataDogAPIKeyIsEmpty = errors.New("config Log.DataDog.APIKey can not be empty")

// DataDogWriter sends each zerolog event as one log item to datadog. Write
// blocks until the intake answered; Init puts it behind NewDataDogSink.
type DataDogWriter struct {
	cfg      DataDog
	hostname string
	ctx      context.Context //nolint:containedctx
	submit   func(ctx context.Context, items []datadogV2.HTTPLogItem) error
}

// NewDataDogWriter returns a writer submitting to the logs intake of cfg.Site.
func NewDataDogWriter(cfg DataDog) (*DataDogWriter, error) {
	if cfg.APIKey == "" {
		return nil, ErrDataDogAPIKeyIsEmpty
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultDataDogTimeout
	}

	ctx := context.WithValue(context.Background(), datadog.ContextAPIKeys, map[string]datadog.APIKey{
		"apiKeyAuth": {Key: cfg.APIKey},
	})

	if cfg.Site != "" {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{"site": cfg.Site})
	}

	configuration := datadog.NewConfiguration()
	if len(cfg.Servers) > 0 {
		configuration.Servers = cfg.Servers
	}

	api := datadogV2.NewLogsApi(datadog.NewAPIClient(configuration))

	hostname, _ := os.Hostname()

	return &DataDogWriter{
		cfg:      cfg,
		hostname: hostname,
		ctx:      ctx,
		submit: func(ctx context.Context, items []datadogV2.HTTPLogItem) error {
			_, _, err := api.SubmitLog(ctx, items)

			return err //nolint:wrapcheck
		},
	}, nil
}

// Write implements io.Writer. p is one JSON encoded zerolog event.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	ctx, cancel := context.WithTimeout(w.ctx, w.cfg.Timeout)
	defer cancel()

	if err := w.submit(ctx, []datadogV2.HTTPLogItem{w.item(p)}); err != nil {
		err = errors.Wrap(err, "datadog submit log")
		// the diode sink discards write errors
		ErrorHandler(err)

		return 0, err
	}

	return len(p), nil
}

func (w *DataDogWriter) item(p []byte) datadogV2.HTTPLogItem {
	item := datadogV2.HTTPLogItem{
		Ddsource: datadog.PtrString(dataDogSource),
		Message:  string(p),
	}

	if w.cfg.ServiceName != "" {
		item.Service = datadog.PtrString(w.cfg.ServiceName)
	}

	if w.cfg.Tags != "" {
		item.Ddtags = datadog.PtrString(w.cfg.Tags)
	}

	if w.hostname != "" {
		item.Hostname = datadog.PtrString(w.hostname)
	}

	return item
}

// NewDataDogSink decouples w from the log producers: events are queued in a
// diode and submitted by a background goroutine. Close the sink to submit
// what is still queued.
func NewDataDogSink(w *DataDogWriter) diode.Writer {
	return diode.NewWriter(w, dataDogBufferSize, dataDogPollInterval, func(missed int) {
		ErrorHandler(errors.Errorf("datadog: dropped %d log events", missed))
	})
}
