package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"pawstay/config"
	"pawstay/infras/kafka"
	"pawstay/infras/kafka/mocks"
	"pawstay/shared/observer"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:   observer.CollectionBookings,
		Value: observer.Change{Collection: observer.CollectionBookings, Action: observer.ActionCreated, ID: "b-1"},
	}

	km, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	var decoded observer.Change
	require.NoError(t, json.Unmarshal(km.Value, &decoded))

	assert.Equal(t, "bookings", string(km.Key))
	assert.Equal(t, "b-1", decoded.ID)
	assert.Equal(t, observer.ActionCreated, decoded.Action)
}

func TestMessage_ToKafkaMessageUnsupportedValue(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestForwarder_ShipsPublishedChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	hub := observer.New()

	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.ChangeTopic = "pawstay.changes"

	sent := make(chan kafka.Message, 1)

	client.EXPECT().
		SendMessages(gomock.Any(), "pawstay.changes", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			for _, m := range messages {
				sent <- m
			}

			return nil
		})

	forwarder := kafka.NewForwarder(cfg, client, hub)
	forwarder.Start(context.Background())

	hub.Publish(observer.Change{Collection: observer.CollectionPets, Action: observer.ActionDeleted, ID: "pet-9"})

	select {
	case m := <-sent:
		assert.Equal(t, observer.CollectionPets, m.Key)
		assert.Equal(t, "pet-9", m.Value.(observer.Change).ID)
	case <-time.After(time.Second):
		t.Fatal("change was not forwarded")
	}

	forwarder.Stop()

	// nothing is shipped once stopped
	hub.Publish(observer.Change{Collection: observer.CollectionPets, Action: observer.ActionCreated})
}

func TestForwarder_SendErrorIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	hub := observer.New()

	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.ChangeTopic = "topic"

	done := make(chan struct{})

	client.EXPECT().
		SendMessages(gomock.Any(), "topic", gomock.Any()).
		DoAndReturn(func(context.Context, string, ...kafka.Message) error {
			close(done)

			return errors.New("broker down")
		})

	forwarder := kafka.NewForwarder(cfg, client, hub)
	forwarder.Start(context.Background())

	hub.Publish(observer.Change{Collection: observer.CollectionChat, Action: observer.ActionUpdated})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("send was not attempted")
	}

	forwarder.Stop()
}

func TestForwarder_DisabledDoesNotSubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	hub := observer.New()

	forwarder := kafka.NewForwarder(&config.Config{}, client, hub)
	forwarder.Start(context.Background())

	hub.Publish(observer.Change{Collection: observer.CollectionChat, Action: observer.ActionUpdated})
	forwarder.Stop()
}
