package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
)

// MockMessageParser is a mock implementation of MessageParser
type MockMessageParser struct {
	mock.Mock
}

func (m *MockMessageParser) Parse(body []byte) (*domain.RawEvent, error) {
	args := m.Called(body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawEvent), args.Error(1)
}

func testMessage(id, body string) types.Message {
	return types.Message{
		MessageId:     aws.String(id),
		Body:          aws.String(body),
		ReceiptHandle: aws.String("receipt-" + id),
	}
}

// collect drains out until it is closed or the timeout elapses
func collect(out <-chan *Envelope, timeout time.Duration) []*Envelope {
	var envelopes []*Envelope
	deadline := time.After(timeout)
	for {
		select {
		case env, ok := <-out:
			if !ok {
				return envelopes
			}
			envelopes = append(envelopes, env)
		case <-deadline:
			return envelopes
		}
	}
}

func TestParserStage_Start_Success(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	event := &domain.RawEvent{EventID: "1", Platform: "Android", Properties: "{}"}
	mockParser.On("Parse", []byte(`{"event_id": "1"}`)).Return(event, nil)

	in := make(chan types.Message, 1)
	out := make(chan *Envelope, 1)
	go stage.Start(context.Background(), in, out)

	in <- testMessage("msg-1", `{"event_id": "1"}`)
	close(in)

	envelopes := collect(out, 100*time.Millisecond)

	require.Len(t, envelopes, 1)
	assert.Equal(t, "1", envelopes[0].Event.EventID)
	assert.Equal(t, "msg-1", envelopes[0].MessageID)
	mockParser.AssertExpectations(t)
	mockConsumer.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
}

func TestParserStage_AckDeletesMessage(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("DeleteMessage", mock.Anything, mock.MatchedBy(func(in *sqs.DeleteMessageInput) bool {
		return aws.ToString(in.ReceiptHandle) == "receipt-msg-1" && aws.ToString(in.QueueUrl) == testQueueURL
	})).Return(&sqs.DeleteMessageOutput{}, nil).Once()
	mockParser.On("Parse", mock.Anything).Return(&domain.RawEvent{EventID: "1"}, nil)

	in := make(chan types.Message, 1)
	out := make(chan *Envelope, 1)
	go stage.Start(context.Background(), in, out)

	in <- testMessage("msg-1", `{}`)
	close(in)

	envelopes := collect(out, 100*time.Millisecond)
	require.Len(t, envelopes, 1)

	require.NoError(t, envelopes[0].Nack(context.Background()))
	mockConsumer.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)

	require.NoError(t, envelopes[0].Ack(context.Background()))
	mockConsumer.AssertExpectations(t)
}

func TestParserStage_Start_MalformedMessageDeleted(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("DeleteMessage", mock.Anything, mock.AnythingOfType("*sqs.DeleteMessageInput")).
		Return(&sqs.DeleteMessageOutput{}, nil)
	mockParser.On("Parse", []byte(`{invalid json}`)).Return(nil, errors.New("invalid JSON format"))

	in := make(chan types.Message, 1)
	out := make(chan *Envelope, 1)
	go stage.Start(context.Background(), in, out)

	in <- testMessage("msg-1", `{invalid json}`)
	close(in)

	envelopes := collect(out, 100*time.Millisecond)

	assert.Empty(t, envelopes)
	mockParser.AssertExpectations(t)
	mockConsumer.AssertNumberOfCalls(t, "DeleteMessage", 1)
}

func TestParserStage_Start_DeleteFailureIsNotFatal(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("DeleteMessage", mock.Anything, mock.Anything).
		Return(nil, errors.New("failed to delete message from SQS"))
	mockParser.On("Parse", []byte(`{invalid}`)).Return(nil, errors.New("invalid JSON"))
	mockParser.On("Parse", []byte(`{"event_id": "2"}`)).Return(&domain.RawEvent{EventID: "2"}, nil)

	in := make(chan types.Message, 2)
	out := make(chan *Envelope, 2)
	go stage.Start(context.Background(), in, out)

	in <- testMessage("msg-1", `{invalid}`)
	in <- testMessage("msg-2", `{"event_id": "2"}`)
	close(in)

	envelopes := collect(out, 100*time.Millisecond)

	require.Len(t, envelopes, 1)
	assert.Equal(t, "2", envelopes[0].Event.EventID)
	mockConsumer.AssertCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
}

func TestParserStage_Start_ContextCancellation(t *testing.T) {
	stage := NewParserStage(new(MockQueueConsumer), new(MockMessageParser), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := make(chan *Envelope, 1)
	stage.Start(ctx, make(chan types.Message), out)

	_, ok := <-out
	assert.False(t, ok, "Output channel should be closed after context cancellation")
}

func TestParserStage_Start_InputChannelClosed(t *testing.T) {
	stage := NewParserStage(new(MockQueueConsumer), new(MockMessageParser), zap.NewNop())

	in := make(chan types.Message)
	close(in)

	out := make(chan *Envelope, 1)
	stage.Start(context.Background(), in, out)

	_, ok := <-out
	assert.False(t, ok, "Output channel should be closed when input channel is closed")
}

func TestParserStage_Start_PreservesOrder(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("DeleteMessage", mock.Anything, mock.Anything).Return(&sqs.DeleteMessageOutput{}, nil)

	mockParser.On("Parse", []byte(`{"event_id": "1"}`)).Return(&domain.RawEvent{EventID: "1"}, nil)
	mockParser.On("Parse", []byte(`{invalid}`)).Return(nil, errors.New("parse error"))
	mockParser.On("Parse", []byte(`{"event_id": "3"}`)).Return(&domain.RawEvent{EventID: "3"}, nil)

	in := make(chan types.Message, 3)
	out := make(chan *Envelope, 3)
	go stage.Start(context.Background(), in, out)

	in <- testMessage("msg-1", `{"event_id": "1"}`)
	in <- testMessage("msg-2", `{invalid}`)
	in <- testMessage("msg-3", `{"event_id": "3"}`)
	close(in)

	envelopes := collect(out, 100*time.Millisecond)

	require.Len(t, envelopes, 2)
	assert.Equal(t, "1", envelopes[0].Event.EventID)
	assert.Equal(t, "3", envelopes[1].Event.EventID)
	mockParser.AssertExpectations(t)
	mockConsumer.AssertNumberOfCalls(t, "DeleteMessage", 1)
}
