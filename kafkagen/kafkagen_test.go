package kafkagen

import (
	"strings"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/fake"
	"github.com/pilosa/launchdash/kafka"
	"github.com/pilosa/launchdash/test"
	"github.com/pkg/errors"
)

func newTestMain(producer sarama.SyncProducer, num uint64) *Main {
	m := NewMain()
	m.Seed = 5
	m.Num = num
	m.producer = producer
	m.log = launchdash.NopLogger{}
	return m
}

// expectLaunch checks that a message value decodes to want.
func expectLaunch(dec kafka.Decoder, want launchdash.Record) mocks.ValueChecker {
	parser := &launchdash.RecordParser{Columns: kafka.Columns()}
	return func(val []byte) error {
		raw, err := dec.Decode(val)
		if err != nil {
			return err
		}
		got, err := parser.Parse(raw)
		if err != nil {
			return err
		}
		if got != want {
			return errors.Errorf("got %+v, want %+v", got, want)
		}
		return nil
	}
}

func TestRunPublishesLaunches(t *testing.T) {
	avro, err := kafka.NewAvroDecoder(kafka.LaunchSchema)
	test.ErrNil(t, err, "getting avro decoder")
	tests := []struct {
		encoding string
		dec      kafka.Decoder
	}{
		{encoding: "json", dec: kafka.JSONDecoder{}},
		{encoding: "avro", dec: avro},
	}
	for _, tst := range tests {
		t.Run(tst.encoding, func(t *testing.T) {
			producer := mocks.NewSyncProducer(t, nil)
			for _, want := range fake.Launches(5, 3) {
				producer.ExpectSendMessageWithCheckerFunctionAndSucceed(expectLaunch(tst.dec, want))
			}
			m := newTestMain(producer, 3)
			m.Encoding = tst.encoding
			test.ErrNil(t, m.Run(), "running")
			test.ErrNil(t, producer.Close(), "closing producer")
		})
	}
}

func TestRunSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndSucceed()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	err := newTestMain(producer, 5).Run()
	if err == nil || !strings.Contains(err.Error(), "sending flight 2") {
		t.Fatalf("unexpected error: %v", err)
	}
	test.ErrNil(t, producer.Close(), "closing producer")
}

func TestRunBadEncoding(t *testing.T) {
	m := newTestMain(nil, 1)
	m.Encoding = "protobuf"
	if err := m.Run(); err == nil || !strings.Contains(err.Error(), "unsupported kafka encoding") {
		t.Fatalf("unexpected error: %v", err)
	}
}
