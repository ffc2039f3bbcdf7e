// Package convert wires a source of workspace objects, an optional cache, the
// converters and a sink into the "qsip convert" command.
package convert

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/kbaseapps/qsip"
	"github.com/kbaseapps/qsip/aws/s3"
	"github.com/kbaseapps/qsip/csv"
	"github.com/kbaseapps/qsip/file"
	"github.com/kbaseapps/qsip/kafka"
	"github.com/kbaseapps/qsip/termstat"
	"github.com/kbaseapps/qsip/workspace"
	"github.com/kbaseapps/qsip/xlsx"
	"github.com/pkg/errors"
)

// Main contains the configuration for a conversion run.
type Main struct {
	Source string `help:"Where to read objects from: file, s3, or workspace."`
	Path   string `help:"File or directory of line separated JSON objects (file source)."`

	Bucket string `help:"S3 bucket name from which to read objects (s3 source)."`
	Prefix string `help:"Only objects in the bucket matching this prefix will be used."`
	Region string `help:"AWS region to use."`

	Endpoint    string   `help:"KBase services endpoint, e.g. https://kbase.us/services/ (workspace source)."`
	Token       string   `help:"KBase auth token (workspace source)."`
	Refs        []string `help:"Comma separated list of object references to fetch. Overrides the three data references."`
	SourceData  string   `help:"Reference of the source data object."`
	SampleData  string   `help:"Reference of the sample set."`
	FeatureData string   `help:"Reference of the feature matrix."`

	Cache     string `help:"Cache fetched workspace objects in bolt or level. Blank disables the cache."`
	CachePath string `help:"Path of the cache file (bolt) or directory (level)."`

	Sink       string   `help:"Where to write converted objects: csv, xlsx, or kafka."`
	Out        string   `help:"Output directory (csv) or workbook file (xlsx)."`
	KafkaHosts []string `help:"Comma separated list of Kafka hosts and ports (kafka sink)."`
	Topic      string   `help:"Kafka topic (kafka sink)."`

	Verbose bool `help:"Enable debug logging."`
	Stats   bool `help:"Print conversion statistics when done."`

	// Stderr receives logs and diagnostics. Defaults to os.Stderr.
	Stderr io.Writer `flag:"-"`
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Source:     "file",
		Path:       "objects.json",
		Region:     "us-east-1",
		Endpoint:   "https://kbase.us/services/",
		CachePath:  "qsip.cache",
		Sink:       "csv",
		Out:        "out",
		KafkaHosts: []string{"localhost:9092"},
		Topic:      "qsip",
		Stderr:     os.Stderr,
	}
}

func (m *Main) stderr() io.Writer {
	if m.Stderr == nil {
		return os.Stderr
	}
	return m.Stderr
}

// Logger returns the logger selected by m.Verbose.
func (m *Main) Logger() qsip.Logger {
	l := log.New(m.stderr(), "", log.LstdFlags)
	if m.Verbose {
		return qsip.VerboseLogger{Logger: l}
	}
	return qsip.StdLogger{Logger: l}
}

// Run reads, converts and writes every object.
func (m *Main) Run() (err error) {
	logger := m.Logger()

	src, closeSrc, err := m.newSource(logger)
	if err != nil {
		return errors.Wrap(err, "getting source")
	}
	defer func() {
		if cerr := closeSrc(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "closing source")
		}
	}()

	sink, err := m.newSink()
	if err != nil {
		return errors.Wrap(err, "getting sink")
	}

	batch := qsip.NewBatch(logger, qsip.LogWarner{Log: logger})
	pipeline := qsip.NewPipeline(src, batch, sink, logger)
	if m.Stats {
		stats := termstat.NewCollector(m.stderr())
		pipeline.Stats = stats
		defer stats.Flush()
	}
	return pipeline.Run()
}

func (m *Main) newSource(logger qsip.Logger) (qsip.Source, func() error, error) {
	if m.Cache != "" && m.Source != "workspace" {
		return nil, nil, errors.Errorf("a cache can only be used with the workspace source, not %s", m.Source)
	}
	switch m.Source {
	case "file":
		src, err := file.NewSource(m.Path)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	case "s3":
		src, err := s3.NewSource(
			s3.OptSrcBucket(m.Bucket),
			s3.OptSrcPrefix(m.Prefix),
			s3.OptSrcRegion(m.Region),
		)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	case "workspace":
		refs, err := m.refs()
		if err != nil {
			return nil, nil, err
		}
		fetcher, closeCache, err := workspace.Connect(m.Endpoint, m.Token, m.Cache, m.CachePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return workspace.NewSource(context.Background(), fetcher, refs), closeCache, nil
	default:
		return nil, nil, errors.Errorf("unknown source '%s'", m.Source)
	}
}

// refs returns the explicit references if any were given, and otherwise the
// validated source, sample and feature references.
func (m *Main) refs() ([]string, error) {
	if len(m.Refs) > 0 {
		for _, ref := range m.Refs {
			if _, err := qsip.ParseRef(ref); err != nil {
				return nil, err
			}
		}
		return m.Refs, nil
	}
	p := qsip.Params{
		SourceData:  m.SourceData,
		SampleData:  m.SampleData,
		FeatureData: m.FeatureData,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p.Refs(), nil
}

func (m *Main) newSink() (qsip.Sink, error) {
	switch m.Sink {
	case "csv":
		return csv.NewSink(m.Out)
	case "xlsx":
		return xlsx.NewSink(m.Out), nil
	case "kafka":
		producer, err := kafka.NewProducer(m.KafkaHosts)
		if err != nil {
			return nil, err
		}
		return kafka.NewSink(producer, m.Topic), nil
	default:
		return nil, errors.Errorf("unknown sink '%s'", m.Sink)
	}
}
