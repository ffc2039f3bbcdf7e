package kafka

import (
	"encoding/json"

	"github.com/Shopify/sarama"
	"github.com/kbaseapps/qsip"
	"github.com/pkg/errors"
)

// Sink is a qsip.Sink which publishes every flattened record of a converted
// object as one JSON message. Messages are keyed by the object reference so
// that the records of an object land on the same partition in order.
type Sink struct {
	Topic string

	producer sarama.SyncProducer
	sent     int
}

// NewSink gets a Sink which publishes to topic using producer. The producer
// must be configured with Return.Successes set.
func NewSink(producer sarama.SyncProducer, topic string) *Sink {
	return &Sink{
		Topic:    topic,
		producer: producer,
	}
}

// NewProducerConfig returns the sarama config NewSink expects.
func NewProducerConfig() *sarama.Config {
	conf := sarama.NewConfig()
	conf.Version = sarama.V0_10_0_0
	conf.Producer.Return.Successes = true
	conf.Producer.RequiredAcks = sarama.WaitForAll
	return conf
}

// NewProducer connects a SyncProducer to hosts.
func NewProducer(hosts []string) (sarama.SyncProducer, error) {
	p, err := sarama.NewSyncProducer(hosts, NewProducerConfig())
	return p, errors.Wrap(err, "getting producer")
}

// Message is the JSON body of a published record.
type Message struct {
	Ref    string      `json:"ref"`
	Type   string      `json:"type"`
	Record qsip.Record `json:"record"`
}

// Write implements qsip.Sink.
func (s *Sink) Write(ref string, obj *qsip.Object) error {
	conv := obj.Conversion()
	if conv == nil {
		return errors.Errorf("%s: object has not been converted", ref)
	}
	for i, rec := range conv.DataList {
		body, err := json.Marshal(Message{Ref: ref, Type: obj.Type(), Record: rec})
		if err != nil {
			return errors.Wrapf(err, "encoding record %d", i)
		}
		_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
			Topic: s.Topic,
			Key:   sarama.StringEncoder(ref),
			Value: sarama.ByteEncoder(body),
		})
		if err != nil {
			return errors.Wrapf(err, "sending record %d", i)
		}
		s.sent++
	}
	return nil
}

// Sent returns the number of messages published so far.
func (s *Sink) Sent() int {
	return s.sent
}

// Close implements qsip.Sink by closing the producer.
func (s *Sink) Close() error {
	return errors.Wrap(s.producer.Close(), "closing producer")
}
