package kafka_test

import (
	"encoding/json"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/kbaseapps/qsip"
	"github.com/kbaseapps/qsip/kafka"
	"github.com/kbaseapps/qsip/test"
)

func TestSinkWrite(t *testing.T) {
	producer := mocks.NewSyncProducer(t, kafka.NewProducerConfig())
	var got []kafka.Message
	for i := 0; i < 4; i++ {
		producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
			var msg kafka.Message
			if err := json.Unmarshal(val, &msg); err != nil {
				return err
			}
			got = append(got, msg)
			return nil
		})
	}

	sink := kafka.NewSink(producer, "qsip")
	test.ErrNil(t, sink.Write("1/2/3", test.ConvertedMatrix()), "Write")
	test.ErrNil(t, sink.Close(), "Close")
	test.MustBe(t, 4, sink.Sent())

	wantIDs := []string{"c1___r1___1", "c1___r2___3", "c2___r1___2", "c2___r2___4"}
	for i, msg := range got {
		test.MustBe(t, "1/2/3", msg.Ref, "ref")
		test.MustBe(t, "KBaseMatrices.AmpliconMatrix-1.0", msg.Type, "type")
		test.MustBe(t, wantIDs[i], msg.Record["id"], "id")
	}
}

func TestSinkWriteFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, kafka.NewProducerConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	sink := kafka.NewSink(producer, "qsip")
	if err := sink.Write("1/2/3", test.ConvertedMatrix()); err == nil {
		t.Fatal("expected send failure")
	}
	test.MustBe(t, 0, sink.Sent())
	test.ErrNil(t, sink.Close(), "Close")
}

func TestSinkWriteUnconverted(t *testing.T) {
	producer := mocks.NewSyncProducer(t, kafka.NewProducerConfig())
	sink := kafka.NewSink(producer, "qsip")
	if err := sink.Write("1/2/3", &qsip.Object{}); err == nil {
		t.Fatal("expected error for unconverted object")
	}
	test.ErrNil(t, sink.Close(), "Close")
}
